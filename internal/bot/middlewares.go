package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	errors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/middleware"
	"github.com/Proton-105/telegram-payments/pkg/logger"
)

// CorrelationMiddleware gives every update its own request context carrying a correlation id.
func CorrelationMiddleware(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		ctx := logger.WithCorrelationID(context.Background(), logger.NewCorrelationID())
		handlers.WithRequestContext(c, ctx)
		return next(c)
	}
}

// RecoveryMiddleware catches panics, reports them via the centralized handler, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, errHandler *errors.Handler, translations *i18n.Manager) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					ctx := handlers.RequestContext(c)
					log.ErrorContext(ctx, "panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					key := errors.DefaultUserMessage
					if errHandler != nil {
						key = errHandler.Handle(ctx, errors.NewPanicError(r))
					}
					notify(ctx, log, c, translations, key)

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging for handler failures.
func ErrorHandlingMiddleware(log *slog.Logger, errHandler *errors.Handler, translations *i18n.Manager) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			ctx := handlers.RequestContext(c)
			key := errors.DefaultUserMessage
			if errHandler != nil {
				key = errHandler.Handle(ctx, err)
			}
			notify(ctx, log, c, translations, key)

			return nil
		}
	}
}

// notify sends the translated message to the chat of c. Pre-checkout queries
// have no chat; Telegram already got their answer.
func notify(ctx context.Context, log *slog.Logger, c telebot.Context, translations *i18n.Manager, key string) {
	if c == nil || c.Chat() == nil {
		return
	}

	if err := c.Send(handlers.Translator(translations, c).T(key)); err != nil {
		log.ErrorContext(ctx, "failed to notify user about error", slog.Any("error", err))
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			ctx := handlers.RequestContext(c)
			start := time.Now()

			userID := int64(0)
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}
			kind := middleware.UpdateKind(c)

			log.DebugContext(ctx, "handling update", slog.Int64("user_id", userID), slog.String("kind", kind))
			err := next(c)
			log.InfoContext(ctx, "handled update",
				slog.Int64("user_id", userID),
				slog.String("kind", kind),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}
