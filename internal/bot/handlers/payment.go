package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/catalog"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/telegram"
	"github.com/Proton-105/telegram-payments/pkg/metrics"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// Receipt is what the shop tells the user after a successful payment.
type Receipt struct {
	SKU              string
	Title            string
	Amount           string
	TelegramChargeID string
	ProviderChargeID string
	Text             string
}

// NewReceipt describes payment using the catalog product named by its payload.
// Products removed from the catalog since the invoice was sent keep their sku as title.
func NewReceipt(t i18n.Translator, cat *catalog.Catalog, payment payments.SuccessfulPayment) Receipt {
	sku, _, err := catalog.ParsePayload(payment.InvoicePayload())
	if err != nil {
		sku = payment.InvoicePayload()
	}

	title := sku
	if product, ok := cat.Product(sku); ok {
		title = product.Title
	}

	amount := catalog.FormatAmount(payment.TotalAmount(), payment.Currency())
	return Receipt{
		SKU:              sku,
		Title:            title,
		Amount:           amount,
		TelegramChargeID: payment.TelegramPaymentChargeID(),
		ProviderChargeID: payment.ProviderPaymentChargeID(),
		Text:             t.Tf("payment.receipt", amount, title, payment.TelegramPaymentChargeID()),
	}
}

// NewPaymentHandler fulfils successful payments by sending the user a receipt.
func NewPaymentHandler(paymentHandler *payments.Handler, cat *catalog.Catalog, translations *i18n.Manager, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		ctx := RequestContext(c)
		t := Translator(translations, c)

		result, handled, err := paymentHandler.HandleSuccessfulPayment(ctx, telegram.MessageFromTelebot(c.Message()),
			func(ctx context.Context, payment payments.SuccessfulPayment) (any, error) {
				metrics.RecordPayment(payment.Currency(), payment.TotalAmount())

				receipt := NewReceipt(t, cat, payment)
				return receipt, c.Send(receipt.Text)
			})
		if err != nil {
			return apperrors.NewPaymentError("fulfilment", err)
		}
		if !handled {
			return nil
		}

		if receipt, ok := result.(Receipt); ok {
			log.InfoContext(ctx, "receipt sent",
				slog.String("sku", receipt.SKU),
				slog.String("amount", receipt.Amount),
				slog.String("telegram_payment_charge_id", receipt.TelegramChargeID),
			)
		}
		return nil
	}
}
