package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/Proton-105/telegram-payments/pkg/metrics"
)

// DefaultUserMessage is the i18n key shown for errors without a specific message.
const DefaultUserMessage = "errors.generic"

// Reporter captures exceptions. *sentry.Hub satisfies it.
type Reporter interface {
	CaptureException(exception error) *sentry.EventID
}

type Handler struct {
	log      *slog.Logger
	reporter Reporter
}

// NewHandler builds an error handler. A nil reporter disables error reporting.
func NewHandler(log *slog.Logger, reporter Reporter) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:      log,
		reporter: reporter,
	}
}

// Handle logs err, reports high and critical errors, and returns the i18n key
// of the message to show the user.
func (h *Handler) Handle(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		h.log.ErrorContext(ctx, "application error",
			slog.String("code", appErr.Code),
			slog.String("message", appErr.Message),
			slog.String("severity", string(appErr.Severity)),
			slog.Any("error", err),
		)
		metrics.RecordError(appErr.Code, string(appErr.Severity))

		if appErr.Severity == SeverityCritical || appErr.Severity == SeverityHigh {
			h.report(err)
		}

		if appErr.UserMessage == "" {
			return DefaultUserMessage
		}
		return appErr.UserMessage
	}

	h.log.ErrorContext(ctx, "unknown error",
		slog.String("message", err.Error()),
		slog.String("severity", string(SeverityHigh)),
	)
	metrics.RecordError("unknown", string(SeverityHigh))
	h.report(err)

	return DefaultUserMessage
}

func (h *Handler) report(err error) {
	if h.reporter == nil {
		return
	}

	if hub, ok := h.reporter.(*sentry.Hub); ok {
		hub.WithScope(func(scope *sentry.Scope) {
			var appErr *AppError
			if errors.As(err, &appErr) && appErr != nil {
				scope.SetTag("code", appErr.Code)
				scope.SetTag("severity", string(appErr.Severity))
			}
			hub.CaptureException(err)
		})
		return
	}

	h.reporter.CaptureException(err)
}
