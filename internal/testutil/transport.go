package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// Call is one request seen by RecordingTransport.
type Call struct {
	Method string
	Params payments.Params
}

// RecordingTransport is a payments.Transport that records every call and
// answers with Err, or with an ok response when Err is nil.
type RecordingTransport struct {
	mu    sync.Mutex
	calls []Call

	Err error
}

var _ payments.Transport = (*RecordingTransport)(nil)

func (t *RecordingTransport) SendInvoice(_ context.Context, params payments.Params) (*payments.Response, error) {
	return t.record(payments.MethodSendInvoice, params)
}

func (t *RecordingTransport) AnswerPreCheckoutQuery(_ context.Context, params payments.Params) (*payments.Response, error) {
	return t.record(payments.MethodAnswerPreCheckoutQuery, params)
}

// Calls returns the recorded calls in order.
func (t *RecordingTransport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

func (t *RecordingTransport) record(method string, params payments.Params) (*payments.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, Call{Method: method, Params: params.Clone()})
	t.mu.Unlock()

	if t.Err != nil {
		return nil, t.Err
	}
	return &payments.Response{OK: true, Result: json.RawMessage(`true`)}, nil
}
