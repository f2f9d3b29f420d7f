package payments_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/pkg/payments"
)

func TestUpdateDecodesWebhookJSON(t *testing.T) {
	const body = `{
		"update_id": 10,
		"pre_checkout_query": {
			"id": "q1",
			"from": {"id": 42, "first_name": "Ada"},
			"currency": "XTR",
			"total_amount": 25,
			"invoice_payload": "coffee:1"
		}
	}`

	var update payments.Update
	require.NoError(t, json.Unmarshal([]byte(body), &update))

	assert.True(t, update.HasPreCheckoutQuery())
	assert.False(t, update.Message.HasSuccessfulPayment())

	q, err := payments.PreCheckoutQueryFromMapping(update.PreCheckoutQuery)
	require.NoError(t, err)
	assert.Equal(t, int64(25), q.TotalAmount())
}

func TestMessageDecodesSuccessfulPayment(t *testing.T) {
	const body = `{
		"update_id": 11,
		"message": {
			"message_id": 3,
			"chat": {"id": 42, "type": "private"},
			"successful_payment": {
				"currency": "XTR",
				"total_amount": 25,
				"invoice_payload": "coffee:1",
				"telegram_payment_charge_id": "tg-1",
				"provider_payment_charge_id": ""
			}
		}
	}`

	var update payments.Update
	require.NoError(t, json.Unmarshal([]byte(body), &update))

	assert.False(t, update.HasPreCheckoutQuery())
	require.True(t, update.Message.HasSuccessfulPayment())

	p, err := payments.SuccessfulPaymentFromMapping(update.Message.SuccessfulPayment)
	require.NoError(t, err)
	assert.Equal(t, "", p.ProviderPaymentChargeID())
}

func TestResponseRawData(t *testing.T) {
	resp := &payments.Response{OK: false, ErrorCode: 400, Description: "Bad Request: PRICES_INVALID"}
	assert.Equal(t, payments.Params{
		"ok":          false,
		"error_code":  400,
		"description": "Bad Request: PRICES_INVALID",
	}, resp.RawData())

	var nilResp *payments.Response
	assert.Equal(t, payments.Params{}, nilResp.RawData())
}
