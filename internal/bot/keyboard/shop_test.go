package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/bot/keyboard"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{SKU: "coffee", Title: "Coffee", Currency: "XTR", Prices: []payments.Price{payments.NewPrice("Coffee", 25)}},
		{SKU: "book", Title: "Book", Currency: "USD", Prices: []payments.Price{payments.NewPrice("Book", 1999)}},
	}
}

func TestCatalogMenu(t *testing.T) {
	translations, err := i18n.Load("en")
	require.NoError(t, err)

	markup, err := keyboard.CatalogMenu(translations.Translator("en"), testProducts())
	require.NoError(t, err)

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "buy:coffee", markup.InlineKeyboard[0][0].Data)
	assert.Contains(t, markup.InlineKeyboard[0][0].Text, "Coffee")
	assert.Contains(t, markup.InlineKeyboard[1][0].Text, "19.99 USD")
}

func TestInvoiceMarkup(t *testing.T) {
	translations, err := i18n.Load("en")
	require.NoError(t, err)

	data, err := keyboard.InvoiceMarkup(translations.Translator("en"), testProducts()[0])
	require.NoError(t, err)

	assert.JSONEq(t, `{"inline_keyboard":[[{"text":"Pay 25 XTR","pay":true}]]}`, data)
}
