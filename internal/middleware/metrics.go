package middleware

import (
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	"github.com/Proton-105/telegram-payments/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(UpdateKind(c), status, time.Since(start))

		return err
	}
}

// UpdateKind names the kind of update in c with a low-cardinality label.
func UpdateKind(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	update := c.Update()
	switch {
	case update.PreCheckoutQuery != nil:
		return "pre_checkout_query"
	case update.Message != nil && update.Message.Payment != nil:
		return "successful_payment"
	case update.Callback != nil:
		return "callback"
	case update.Message != nil:
		return "message"
	default:
		return "unknown"
	}
}
