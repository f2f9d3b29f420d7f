package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/health"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

type rawCall struct {
	method  string
	payload interface{}
}

type stubAPI struct {
	calls    []rawCall
	response string
	err      error
}

func (s *stubAPI) Raw(method string, payload interface{}) ([]byte, error) {
	s.calls = append(s.calls, rawCall{method: method, payload: payload})
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.response), nil
}

func TestClientSendInvoice(t *testing.T) {
	api := &stubAPI{response: `{"ok":true,"result":{"message_id":7}}`}
	client := NewClient(api)

	params := payments.Params{"chat_id": "42", "title": "Coffee"}
	resp, err := client.SendInvoice(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	assert.Equal(t, payments.MethodSendInvoice, api.calls[0].method)
	assert.Equal(t, params, api.calls[0].payload)

	assert.True(t, resp.OK)
	assert.JSONEq(t, `{"message_id":7}`, string(resp.Result))
}

func TestClientAnswerPreCheckoutQuery(t *testing.T) {
	api := &stubAPI{response: `{"ok":true,"result":true}`}
	client := NewClient(api)

	resp, err := client.AnswerPreCheckoutQuery(context.Background(), payments.Params{"pre_checkout_query_id": "q1", "ok": true})
	require.NoError(t, err)

	assert.Equal(t, payments.MethodAnswerPreCheckoutQuery, api.calls[0].method)
	assert.Equal(t, json.RawMessage(`true`), resp.Result)
}

func TestClientErrors(t *testing.T) {
	t.Run("api error is returned unchanged", func(t *testing.T) {
		errAPI := errors.New("telegram: Bad Request: PRICES_INVALID (400)")
		client := NewClient(&stubAPI{err: errAPI})

		_, err := client.SendInvoice(context.Background(), payments.Params{})
		assert.Same(t, errAPI, err)
	})

	t.Run("undecodable response", func(t *testing.T) {
		client := NewClient(&stubAPI{response: `<html>`})

		_, err := client.SendInvoice(context.Background(), payments.Params{})
		assert.ErrorContains(t, err, "decode sendInvoice response")
	})

	t.Run("canceled context", func(t *testing.T) {
		api := &stubAPI{response: `{"ok":true}`}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(api).SendInvoice(ctx, payments.Params{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, api.calls)
	})

	t.Run("nil api", func(t *testing.T) {
		_, err := NewClient(nil).SendInvoice(context.Background(), payments.Params{})
		assert.Error(t, err)
	})
}

type blockingAPI struct {
	release chan struct{}
}

func (b *blockingAPI) Raw(string, interface{}) ([]byte, error) {
	<-b.release
	return []byte(`{"ok":true}`), nil
}

func TestClientHealthCheck(t *testing.T) {
	me := &telebot.User{ID: 1, IsBot: true, Username: "shop_bot"}

	api := &stubAPI{response: `{"ok":true}`}
	require.NoError(t, NewClient(api, WithIdentity(me)).HealthCheck(context.Background()))
	assert.Empty(t, api.calls)

	assert.Error(t, NewClient(api).HealthCheck(context.Background()))
	assert.Error(t, NewClient(nil, WithIdentity(me)).HealthCheck(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewClient(api, WithIdentity(me)).HealthCheck(ctx), context.Canceled)
}

func TestClientHealthCheckDoesNotWaitForTelegram(t *testing.T) {
	api := &blockingAPI{release: make(chan struct{})}
	defer close(api.release)

	checker := health.NewChecker(nil)
	checker.AddCheck("telegram", NewClient(api, WithIdentity(&telebot.User{ID: 1})))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	results := checker.Check(ctx)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, map[string]string{"telegram": health.StatusOK}, results)
}
