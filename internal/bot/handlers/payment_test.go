package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	"github.com/Proton-105/telegram-payments/internal/testutil"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

func paymentUpdate(payload string) telebot.Update {
	update := testutil.TextUpdate("")
	update.Message.Payment = &telebot.Payment{
		Currency:         "XTR",
		Total:            25,
		Payload:          payload,
		TelegramChargeID: "tg-charge-1",
	}
	return update
}

func TestPaymentHandlerSendsReceipt(t *testing.T) {
	f := newFixture(t)
	handler := handlers.NewPaymentHandler(f.payments, f.catalog, f.translations, nil)

	c := testutil.NewFakeContext(paymentUpdate(catalog.NewPayload("coffee")))
	require.NoError(t, handler(c))

	sent := c.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], "25 XTR")
	assert.Contains(t, sent[0], "Coffee")
	assert.Contains(t, sent[0], "tg-charge-1")
	assert.Empty(t, f.transport.Calls())
}

func TestPaymentHandlerIgnoresPlainMessages(t *testing.T) {
	f := newFixture(t)
	handler := handlers.NewPaymentHandler(f.payments, f.catalog, f.translations, nil)

	c := testutil.NewFakeContext(testutil.TextUpdate("thanks"))
	require.NoError(t, handler(c))
	assert.Empty(t, c.Sent())
}

func TestNewReceiptForRemovedProduct(t *testing.T) {
	f := newFixture(t)
	payload := catalog.NewPayload("tea")
	payment := payments.NewSuccessfulPayment("tg-2", "prov-2",
		payments.NewCommonPaymentFields("USD", 1050, payload, nil, nil))

	receipt := handlers.NewReceipt(f.translations.Translator("en"), f.catalog, payment)

	assert.Equal(t, "tea", receipt.SKU)
	assert.Equal(t, "tea", receipt.Title)
	assert.Equal(t, "10.50 USD", receipt.Amount)
	assert.Equal(t, "prov-2", receipt.ProviderChargeID)
	assert.Contains(t, receipt.Text, "tg-2")
}
