package payments

// Update is the subset of a Telegram update this package reads. It decodes
// directly from webhook JSON; the nested payloads stay raw mappings.
type Update struct {
	UpdateID         int64    `json:"update_id"`
	Message          *Message `json:"message,omitempty"`
	PreCheckoutQuery Params   `json:"pre_checkout_query,omitempty"`
}

// Message is the subset of a Telegram message this package reads.
type Message struct {
	MessageID         int64  `json:"message_id"`
	Chat              Params `json:"chat,omitempty"`
	SuccessfulPayment Params `json:"successful_payment,omitempty"`
}

// HasPreCheckoutQuery reports whether the update carries a pre-checkout query.
func (u Update) HasPreCheckoutQuery() bool {
	return len(u.PreCheckoutQuery) > 0
}

// HasSuccessfulPayment reports whether the message carries a successful payment.
func (m *Message) HasSuccessfulPayment() bool {
	return m != nil && len(m.SuccessfulPayment) > 0
}
