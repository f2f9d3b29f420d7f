package payments

import "context"

const (
	MethodSendInvoice            = "sendInvoice"
	MethodAnswerPreCheckoutQuery = "answerPreCheckoutQuery"
)

// Transport performs the Bot API calls the handler needs. Implementations own
// timeouts, cancellation and error reporting; the handler returns their errors unchanged.
type Transport interface {
	SendInvoice(ctx context.Context, params Params) (*Response, error)
	AnswerPreCheckoutQuery(ctx context.Context, params Params) (*Response, error)
}
