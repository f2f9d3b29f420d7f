package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/keyboard"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
)

// NewMenuHandler returns a handler listing the catalog with one buy button per product.
func NewMenuHandler(cat *catalog.Catalog, translations *i18n.Manager, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		t := Translator(translations, c)

		products := cat.Products()
		if len(products) == 0 {
			return send(c, t.T("menu.empty"))
		}

		markup, err := keyboard.CatalogMenu(t, products)
		if err != nil {
			log.ErrorContext(RequestContext(c), "failed to build catalog menu", slog.Any("error", err))
			return err
		}

		return send(c, t.T("menu.title"), markup)
	}
}

// NewHelpHandler returns a handler explaining the available commands.
func NewHelpHandler(translations *i18n.Manager) Handler {
	return func(c telebot.Context) error {
		return send(c, Translator(translations, c).T("help"))
	}
}

// send replies in the chat of c, marking delivery failures as Telegram API errors.
func send(c telebot.Context, what any, opts ...any) error {
	if err := c.Send(what, opts...); err != nil {
		return apperrors.NewExternalAPIError("telegram", err)
	}
	return nil
}
