package payments

import (
	"context"
	"log/slog"

	"github.com/Proton-105/telegram-payments/pkg/logger"
)

// Handler sends invoices and processes payment updates on top of a Transport.
// It keeps no state between calls; concurrent use is as safe as the transport and logger are.
type Handler struct {
	transport Transport
	log       *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the structured logger. A nil logger keeps the discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHandler creates a Handler bound to transport. Without WithLogger every log record is discarded.
func NewHandler(transport Transport, opts ...Option) *Handler {
	h := &Handler{
		transport: transport,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// SendInvoice flattens invoice, sends it and returns the transport response unchanged.
// Transport errors are returned as is; nothing is retried.
func (h *Handler) SendInvoice(ctx context.Context, invoice Invoice) (*Response, error) {
	params := invoice.ToMapping()
	h.log.DebugContext(ctx, "raw invoice", paramsAttrs(params)...)

	resp, err := h.transport.SendInvoice(ctx, params)
	if err != nil {
		return nil, err
	}

	h.log.DebugContext(ctx, "raw sendInvoice telegram response", paramsAttrs(resp.RawData())...)
	h.log.Log(ctx, logger.LevelNotice, "invoice has been sent",
		slog.String("chat_id", invoice.ChatID()),
		slog.String("title", invoice.Title()),
		slog.String("description", invoice.Description()),
	)

	return resp, nil
}

// HandlePreCheckoutQuery answers the pre-checkout query carried by update with
// the verdict of decide. It returns (nil, nil) when the update holds no query,
// which is the normal case for every non-payment update.
func (h *Handler) HandlePreCheckoutQuery(ctx context.Context, update Update, decide PreCheckoutFunc) (*Response, error) {
	if !update.HasPreCheckoutQuery() {
		return nil, nil
	}
	if decide == nil {
		return nil, ErrNilCallback
	}

	h.log.DebugContext(ctx, "raw pre_checkout_query telegram update", paramsAttrs(update.PreCheckoutQuery)...)

	query, err := PreCheckoutQueryFromMapping(update.PreCheckoutQuery)
	if err != nil {
		return nil, err
	}

	decision := decide(ctx, query)
	params := Params{
		"pre_checkout_query_id": query.ID(),
		"ok":                    decision.Approved(),
	}
	if !decision.Approved() {
		params["error_message"] = decision.Reason()
	}

	resp, err := h.transport.AnswerPreCheckoutQuery(ctx, params)
	if err != nil {
		return nil, err
	}

	if decision.Approved() {
		h.log.Log(ctx, logger.LevelNotice, "pre-checkout query has been approved",
			slog.String("pre_checkout_query_id", query.ID()),
			slog.Int64("total_amount", query.TotalAmount()),
			slog.String("currency", query.Currency()),
		)
	} else {
		h.log.ErrorContext(ctx, "pre-checkout query has been declined",
			slog.String("pre_checkout_query_id", query.ID()),
			slog.String("error_message", decision.Reason()),
		)
	}

	return resp, nil
}

// HandleSuccessfulPayment passes the successful payment carried by msg to fulfil
// and returns its result and error unchanged. handled is false, and fulfil is
// not called, when msg holds no payment.
func (h *Handler) HandleSuccessfulPayment(ctx context.Context, msg *Message, fulfil SuccessFunc) (result any, handled bool, err error) {
	if !msg.HasSuccessfulPayment() {
		return nil, false, nil
	}
	if fulfil == nil {
		return nil, false, ErrNilCallback
	}

	h.log.DebugContext(ctx, "raw successful_payment telegram message", paramsAttrs(msg.SuccessfulPayment)...)

	payment, err := SuccessfulPaymentFromMapping(msg.SuccessfulPayment)
	if err != nil {
		return nil, false, err
	}

	h.log.Log(ctx, logger.LevelNotice, "successful payment has been received",
		slog.Int64("total_amount", payment.TotalAmount()),
		slog.String("currency", payment.Currency()),
	)

	result, err = fulfil(ctx, payment)
	return result, true, err
}

func paramsAttrs(p Params) []any {
	attrs := make([]any, 0, len(p))
	for _, key := range p.Keys() {
		attrs = append(attrs, slog.Any(key, p[key]))
	}
	return attrs
}
