package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Proton-105/telegram-payments/internal/bot"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/health"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/lifecycle"
	"github.com/Proton-105/telegram-payments/internal/ratelimit"
	"github.com/Proton-105/telegram-payments/internal/server"
	"github.com/Proton-105/telegram-payments/internal/telegram"
	"github.com/Proton-105/telegram-payments/pkg/config"
	"github.com/Proton-105/telegram-payments/pkg/graceful"
	"github.com/Proton-105/telegram-payments/pkg/logger"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

const (
	sentryFlushTimeout     = 2 * time.Second
	limiterCleanupInterval = 5 * time.Minute
	limiterMaxIdle         = time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "payments bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return err
	}

	var hub *sentry.Hub
	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		hub = sentry.CurrentHub()
	}

	log, logCloser, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		SentryHub:  hub,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(log)

	log.Info("starting payments bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.Int("products", len(cfg.Payments.Products)),
	)

	translations, err := i18n.Load(cfg.Bot.DefaultLanguage)
	if err != nil {
		return err
	}

	cat, err := catalog.New(catalog.ProductsFromConfig(cfg.Payments.Products))
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	tb, err := bot.NewTelebot(cfg.Bot, log)
	if err != nil {
		return err
	}

	client := telegram.NewClient(tb)
	paymentHandler := payments.NewHandler(client, payments.WithLogger(log.With(slog.String("component", "payments"))))

	var reporter apperrors.Reporter
	if hub != nil {
		reporter = hub
	}

	invoiceLimiter := ratelimit.NewMemoryLimiter(log)
	go invoiceLimiter.Run(ctx, limiterCleanupInterval, limiterMaxIdle)

	shopBot := bot.New(tb, bot.Dependencies{
		Payments:       paymentHandler,
		Catalog:        cat,
		Translations:   translations,
		ErrorHandler:   apperrors.NewHandler(log, reporter),
		ProviderToken:  cfg.Payments.ProviderToken,
		StartParameter: cfg.Payments.StartParameter,
		InvoiceLimiter: invoiceLimiter,
		InvoiceRule: ratelimit.Rule{
			Limit:  cfg.Payments.InvoiceLimit,
			Window: cfg.Payments.InvoiceWindow,
		},
	}, log)

	config.Watch(v, log, func(next *config.Config) {
		if err := cat.Replace(catalog.ProductsFromConfig(next.Payments.Products)); err != nil {
			log.Error("catalog reload rejected", slog.Any("error", err))
			return
		}
		log.Info("catalog reloaded", slog.Int("products", len(next.Payments.Products)))
	})

	checker := health.NewChecker(log)
	checker.AddCheck("telegram", client)
	checker.AddCheck("catalog", health.NewCatalogChecker(cat))

	ops := graceful.NewServer(log, server.New(cfg.Server.Addr, log, checker), cfg.Server.ShutdownTimeout)

	shutdown := lifecycle.NewShutdown(log)
	shutdown.Register("logger", func(context.Context) error { return closeLogger(logCloser) })
	if hub != nil {
		shutdown.Register("sentry", func(context.Context) error {
			if !sentry.Flush(sentryFlushTimeout) {
				return errors.New("sentry flush timed out")
			}
			return nil
		})
	}
	shutdown.Register("telegram bot", shopBot.Shutdown)

	opsErr := make(chan error, 1)
	go func() { opsErr <- ops.ListenAndServe(ctx) }()
	go shopBot.Start()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		// The ops server drains itself once ctx is canceled.
		shutdown.Register("ops server", func(context.Context) error { return <-opsErr })
	case runErr = <-opsErr:
		log.Error("ops server stopped", slog.Any("error", runErr))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(runErr, shutdown.Execute(shutdownCtx))
}

func closeLogger(c io.Closer) error {
	if c == nil {
		return nil
	}
	return c.Close()
}
