package bot

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	errors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/middleware"
	"github.com/Proton-105/telegram-payments/internal/ratelimit"
	"github.com/Proton-105/telegram-payments/pkg/config"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// allowedUpdates are the update types the shop subscribes to.
var allowedUpdates = []string{"message", "callback_query", "pre_checkout_query"}

// NewTelebot builds the telebot instance configured for polling or webhook mode.
func NewTelebot(cfg config.BotConfig, log *slog.Logger) (*telebot.Bot, error) {
	if log == nil {
		log = slog.Default()
	}

	settings := telebot.Settings{
		Token: cfg.Token,
		OnError: func(err error, c telebot.Context) {
			log.Error("telebot error", slog.Any("error", err))
		},
	}

	if cfg.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen:         cfg.WebhookListen,
			AllowedUpdates: allowedUpdates,
			Endpoint:       &telebot.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout:        cfg.Timeout,
			AllowedUpdates: allowedUpdates,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}
	return tb, nil
}

// Dependencies are the collaborators of the shop bot.
type Dependencies struct {
	Payments       *payments.Handler
	Catalog        *catalog.Catalog
	Translations   *i18n.Manager
	ErrorHandler   *errors.Handler
	ProviderToken  string
	StartParameter string

	// InvoiceLimiter throttles /buy and buy buttons per user. Nil disables throttling.
	InvoiceLimiter ratelimit.Limiter
	InvoiceRule    ratelimit.Rule
}

// Bot wraps telebot.Bot with the shop handlers.
type Bot struct {
	telebot *telebot.Bot
	log     *slog.Logger
	router  *Router
	deps    Dependencies
}

// New registers the shop handlers on tb.
func New(tb *telebot.Bot, deps Dependencies, log *slog.Logger) *Bot {
	if log == nil {
		log = slog.Default()
	}

	b := &Bot{
		telebot: tb,
		log:     log,
		router:  NewRouter(log),
		deps:    deps,
	}

	b.setupRouter()
	b.registerTelebotHandlers()

	return b
}

// Start runs the telegram bot event loop. It blocks until Stop is called.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Shutdown stops the bot, giving up when ctx expires first.
func (b *Bot) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.Stop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bot) setupRouter() {
	b.router.Use(CorrelationMiddleware)
	b.router.Use(RecoveryMiddleware(b.log, b.deps.ErrorHandler, b.deps.Translations))
	b.router.Use(ErrorHandlingMiddleware(b.log, b.deps.ErrorHandler, b.deps.Translations))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(middleware.Metrics)

	menu := handlers.NewMenuHandler(b.deps.Catalog, b.deps.Translations, b.log)
	invoices := handlers.NewInvoiceSender(
		b.deps.Payments,
		b.deps.Catalog,
		b.deps.Translations,
		b.deps.ProviderToken,
		b.deps.StartParameter,
		b.log,
	)

	b.router.RegisterCommand(CommandStart, menu)
	b.router.RegisterCommand(CommandHelp, handlers.NewHelpHandler(b.deps.Translations))
	throttle := middleware.RateLimit(b.deps.InvoiceLimiter, b.deps.InvoiceRule, "invoice", b.log)

	b.router.RegisterCommand(CommandBuy, throttle(invoices.Command))
	b.router.RegisterCallback(CallbackBuy, throttle(invoices.Callback))
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)
	b.telebot.Handle(telebot.OnCheckout, b.router.Wrap(
		handlers.NewCheckoutHandler(b.deps.Payments, b.deps.Catalog, b.deps.Translations, b.log),
	))
	b.telebot.Handle(telebot.OnPayment, b.router.Wrap(
		handlers.NewPaymentHandler(b.deps.Payments, b.deps.Catalog, b.deps.Translations, b.log),
	))
}
