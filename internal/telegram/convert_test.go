package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/pkg/payments"
)

func TestUpdateFromTelebotPreCheckoutQuery(t *testing.T) {
	update := UpdateFromTelebot(telebot.Update{
		ID: 9,
		PreCheckoutQuery: &telebot.PreCheckoutQuery{
			Sender:   &telebot.User{ID: 42, FirstName: "Ada", LanguageCode: "en"},
			ID:       "q1",
			Currency: "XTR",
			Payload:  "coffee:1",
			Total:    25,
		},
	})

	assert.Equal(t, int64(9), update.UpdateID)
	assert.Nil(t, update.Message)
	require.True(t, update.HasPreCheckoutQuery())
	assert.NotContains(t, update.PreCheckoutQuery, "shipping_option_id")
	assert.NotContains(t, update.PreCheckoutQuery, "order_info")

	q, err := payments.PreCheckoutQueryFromMapping(update.PreCheckoutQuery)
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID())
	assert.Equal(t, int64(25), q.TotalAmount())
	assert.Equal(t, "en", q.From()["language_code"])
}

func TestUpdateFromTelebotKeepsFilledOrderInfo(t *testing.T) {
	update := UpdateFromTelebot(telebot.Update{
		PreCheckoutQuery: &telebot.PreCheckoutQuery{
			Sender:   &telebot.User{ID: 42},
			ID:       "q2",
			Currency: "USD",
			Payload:  "book:1",
			Total:    1999,
			OptionID: "express",
			Order:    telebot.Order{Email: "ada@example.com"},
		},
	})

	q, err := payments.PreCheckoutQueryFromMapping(update.PreCheckoutQuery)
	require.NoError(t, err)

	option, ok := q.ShippingOptionID()
	assert.True(t, ok)
	assert.Equal(t, "express", option)
	assert.Equal(t, "ada@example.com", q.OrderInfo()["email"])
}

func TestMessageFromTelebot(t *testing.T) {
	assert.Nil(t, MessageFromTelebot(nil))

	plain := MessageFromTelebot(&telebot.Message{ID: 3, Chat: &telebot.Chat{ID: 42}, Text: "hi"})
	assert.False(t, plain.HasSuccessfulPayment())
	assert.Equal(t, float64(42), plain.Chat["id"])

	msg := MessageFromTelebot(&telebot.Message{
		ID:   4,
		Chat: &telebot.Chat{ID: 42},
		Payment: &telebot.Payment{
			Currency:         "XTR",
			Total:            25,
			Payload:          "coffee:1",
			TelegramChargeID: "tg-1",
		},
	})
	require.True(t, msg.HasSuccessfulPayment())

	p, err := payments.SuccessfulPaymentFromMapping(msg.SuccessfulPayment)
	require.NoError(t, err)
	assert.Equal(t, "tg-1", p.TelegramPaymentChargeID())
	assert.Equal(t, "", p.ProviderPaymentChargeID())
}
