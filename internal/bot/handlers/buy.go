package handlers

import (
	"log/slog"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/keyboard"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/pkg/metrics"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// InvoiceSender sends catalog invoices in response to /buy and buy buttons.
type InvoiceSender struct {
	payments       *payments.Handler
	catalog        *catalog.Catalog
	translations   *i18n.Manager
	providerToken  string
	startParameter string
	log            *slog.Logger
}

// NewInvoiceSender wires the payments handler to the catalog.
func NewInvoiceSender(
	paymentHandler *payments.Handler,
	cat *catalog.Catalog,
	translations *i18n.Manager,
	providerToken, startParameter string,
	log *slog.Logger,
) *InvoiceSender {
	if log == nil {
		log = slog.Default()
	}

	return &InvoiceSender{
		payments:       paymentHandler,
		catalog:        cat,
		translations:   translations,
		providerToken:  providerToken,
		startParameter: startParameter,
		log:            log,
	}
}

// Command handles "/buy <sku>".
func (s *InvoiceSender) Command(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 || args[0] == "" {
		return apperrors.NewValidationError("buy command without sku")
	}

	return s.send(c, args[0])
}

// Callback handles the buy buttons of the catalog menu.
func (s *InvoiceSender) Callback(c telebot.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}

	// Stops the button spinner; failure only affects the UI.
	_ = c.Respond()

	_, sku, err := keyboard.DecodeCallback(cb.Data)
	if err != nil || sku == "" {
		return apperrors.NewValidationError("buy callback without sku")
	}

	return s.send(c, sku)
}

func (s *InvoiceSender) send(c telebot.Context, sku string) error {
	ctx := RequestContext(c)
	t := Translator(s.translations, c)

	product, ok := s.catalog.Product(sku)
	if !ok {
		return apperrors.NewUnknownProductError(sku, catalog.ErrUnknownProduct)
	}

	chat := c.Chat()
	if chat == nil {
		s.log.WarnContext(ctx, "buy request without chat", slog.String("sku", sku))
		return nil
	}

	markup, err := keyboard.InvoiceMarkup(t, product)
	if err != nil {
		return apperrors.NewInvoiceError(sku, err)
	}

	invoice, err := s.catalog.Invoice(
		sku,
		strconv.FormatInt(chat.ID, 10),
		s.providerToken,
		s.startParameter,
		payments.WithReplyMarkup(markup),
	)
	if err != nil {
		return apperrors.NewUnknownProductError(sku, err)
	}

	_, err = s.payments.SendInvoice(ctx, invoice)
	metrics.RecordInvoice(sku, err)
	if err != nil {
		return apperrors.NewInvoiceError(sku, err)
	}

	return nil
}
