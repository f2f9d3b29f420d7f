package middleware

import (
	"log/slog"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/ratelimit"
)

// RateLimit throttles the wrapped handler per sender. Updates without a sender pass through.
// Limiter failures other than an exceeded limit do not block the user.
func RateLimit(limiter ratelimit.Limiter, rule ratelimit.Rule, scope string, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}
		if limiter == nil || !rule.Enabled() {
			return next
		}

		return func(c telebot.Context) error {
			if c == nil || c.Sender() == nil {
				return next(c)
			}

			ctx := handlers.RequestContext(c)
			key := scope + ":" + strconv.FormatInt(c.Sender().ID, 10)

			res, err := limiter.Check(ctx, key, rule)
			switch {
			case err == nil:
				return next(c)
			case res != nil && !res.Allowed:
				if c.Callback() != nil {
					_ = c.Respond()
				}
				return apperrors.NewRateLimitError(scope, res.ResetAt)
			default:
				log.WarnContext(ctx, "rate limiter failed", slog.String("key", key), slog.Any("error", err))
				return next(c)
			}
		}
	}
}
