package keyboard

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/catalog"
	"github.com/Proton-105/telegram-payments/internal/i18n"
)

// CatalogMenu renders one buy button per product.
func CatalogMenu(t i18n.Translator, products []catalog.Product) (*telebot.ReplyMarkup, error) {
	builder := NewInlineKeyboard()
	for _, p := range products {
		builder.AddRow(InlineButton{
			Text:   t.Tf("menu.item", p.Title, catalog.FormatAmount(p.Total(), p.Currency)),
			Action: ActionBuy,
			Data:   p.SKU,
		})
	}
	return builder.Build()
}

// InvoiceMarkup returns the JSON-serialized reply_markup of an invoice message.
// Telegram requires the first button to be the Pay button.
func InvoiceMarkup(t i18n.Translator, p catalog.Product) (string, error) {
	return NewInlineKeyboard().
		AddRow(InlineButton{
			Text: t.Tf("buy.pay_button", catalog.FormatAmount(p.Total(), p.Currency)),
			Pay:  true,
		}).
		JSON()
}
