package errors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
)

type recordingReporter struct {
	mu       sync.Mutex
	captured []error
}

func (r *recordingReporter) CaptureException(err error) *sentry.EventID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captured = append(r.captured, err)
	return nil
}

func TestHandlerReturnsUserMessageKey(t *testing.T) {
	reporter := &recordingReporter{}
	h := NewHandler(nil, reporter)

	tests := []struct {
		name     string
		err      error
		key      string
		reported bool
	}{
		{name: "low severity", err: NewValidationError("no sku"), key: "buy.usage"},
		{name: "rate limited", err: NewRateLimitError("invoice", time.Now()), key: "buy.rate_limited"},
		{name: "high severity", err: NewInvoiceError("coffee", errors.New("bad token")), key: "buy.failed", reported: true},
		{name: "critical", err: NewPaymentError("pre-checkout", errors.New("timeout")), key: DefaultUserMessage, reported: true},
		{name: "wrapped", err: fmt.Errorf("route: %w", NewUnknownProductError("tea", nil)), key: "buy.unknown_product"},
		{name: "no user message", err: &AppError{Code: "E999", Severity: SeverityLow}, key: DefaultUserMessage},
		{name: "plain error", err: errors.New("boom"), key: DefaultUserMessage, reported: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(reporter.captured)

			assert.Equal(t, tt.key, h.Handle(context.Background(), tt.err))

			if tt.reported {
				assert.Len(t, reporter.captured, before+1)
			} else {
				assert.Len(t, reporter.captured, before)
			}
		})
	}
}

func TestHandlerNilError(t *testing.T) {
	assert.Empty(t, NewHandler(nil, nil).Handle(context.Background(), nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("provider down")
	err := NewPaymentError("fulfilment", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "payment fulfilment: provider down", err.Error())
	assert.Equal(t, SeverityCritical, err.Severity)
}
