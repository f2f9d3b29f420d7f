package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Rule allows Limit requests per key within a sliding Window.
// A non-positive Limit disables limiting.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether r limits anything.
func (r Rule) Enabled() bool {
	return r.Limit > 0 && r.Window > 0
}

// Result captures the outcome of a rate-limit evaluation.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter describes a rate-limiting strategy interface.
type Limiter interface {
	Check(ctx context.Context, key string, rule Rule) (*Result, error)
}

// ErrLimitExceeded indicates the rate limit has been reached for the key.
var ErrLimitExceeded = errors.New("rate limit exceeded")
