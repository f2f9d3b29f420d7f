package handlers

import (
	"context"
	"errors"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/catalog"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/telegram"
	"github.com/Proton-105/telegram-payments/pkg/metrics"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// NewCheckoutHandler answers pre-checkout queries, approving only those that
// still match the catalog.
func NewCheckoutHandler(paymentHandler *payments.Handler, cat *catalog.Catalog, translations *i18n.Manager, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		ctx := RequestContext(c)
		outcome := metrics.OutcomeApproved

		resp, err := paymentHandler.HandlePreCheckoutQuery(ctx, telegram.UpdateFromTelebot(c.Update()),
			func(ctx context.Context, query payments.PreCheckoutQuery) payments.Decision {
				if _, err := cat.Verify(query.CommonPaymentFields); err != nil {
					log.WarnContext(ctx, "pre-checkout query does not match the catalog",
						slog.String("pre_checkout_query_id", query.ID()),
						slog.String("invoice_payload", query.InvoicePayload()),
						slog.Any("error", err),
					)
					outcome = metrics.OutcomeRejected

					t := translations.Translator(senderLanguage(query.From()))
					return payments.Reject(t.T(rejectionKey(err)))
				}
				return payments.Approve()
			})
		if err != nil {
			metrics.RecordPreCheckout(metrics.OutcomeFailed)
			return apperrors.NewPaymentError("pre-checkout", err)
		}
		if resp == nil {
			return nil
		}

		metrics.RecordPreCheckout(outcome)
		return nil
	}
}

func rejectionKey(err error) string {
	switch {
	case errors.Is(err, catalog.ErrMalformedPayload):
		return "checkout.malformed_payload"
	case errors.Is(err, catalog.ErrCurrencyMismatch):
		return "checkout.currency_mismatch"
	case errors.Is(err, catalog.ErrAmountMismatch):
		return "checkout.amount_mismatch"
	default:
		return "checkout.unknown_product"
	}
}

func senderLanguage(from payments.Params) string {
	lang, _ := from["language_code"].(string)
	return lang
}
