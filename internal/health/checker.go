package health

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Proton-105/telegram-payments/internal/catalog"
)

// StatusOK is reported for components whose check passed.
const StatusOK = "OK"

// defaultTimeout bounds each check when the caller context has no deadline.
const defaultTimeout = 5 * time.Second

// Checkable represents a component that can report its health status.
// *telegram.Client satisfies it.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function to Checkable.
type CheckFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f CheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	mu     sync.RWMutex
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}

	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Names returns the registered component names in order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs all registered health checks concurrently and returns their statuses.
func (c *Checker) Check(ctx context.Context) map[string]string {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	c.mu.RLock()
	checks := make(map[string]Checkable, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(checks))
	)

	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			status := StatusOK
			if err := runCheck(ctx, check); err != nil {
				status = err.Error()
				c.log.ErrorContext(ctx, "health check failed", slog.String("component", name), slog.Any("error", err))
			}

			mu.Lock()
			results[name] = status
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results
}

// runCheck returns when check finishes or ctx is done, whichever comes first.
// A check still running after the deadline is left to finish on its own.
func runCheck(ctx context.Context, check Checkable) error {
	done := make(chan error, 1)
	go func() {
		done <- check.HealthCheck(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Healthy reports whether every status in results is StatusOK.
func Healthy(results map[string]string) bool {
	for _, status := range results {
		if status != StatusOK {
			return false
		}
	}
	return true
}

// CatalogChecker fails while the catalog has nothing to sell.
type CatalogChecker struct {
	catalog *catalog.Catalog
}

// NewCatalogChecker constructs a CatalogChecker.
func NewCatalogChecker(cat *catalog.Catalog) *CatalogChecker {
	return &CatalogChecker{catalog: cat}
}

// HealthCheck ensures at least one product is on sale.
func (c *CatalogChecker) HealthCheck(context.Context) error {
	if c == nil || c.catalog == nil {
		return errors.New("catalog is not initialized")
	}
	if len(c.catalog.Products()) == 0 {
		return errors.New("catalog is empty")
	}
	return nil
}
