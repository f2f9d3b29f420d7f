package payments

import "fmt"

// Invoice describes a sendInvoice request.
//
// Telegram documents limits on several fields (title 1-32 characters, description
// 1-255 characters, payload 1-128 bytes, ISO 4217 currency). They are not checked here.
// The payload is never shown to the user; it comes back in pre-checkout queries
// and successful payments.
type Invoice struct {
	chatID         string
	title          string
	description    string
	payload        string
	providerToken  string
	startParameter string
	currency       string
	prices         []Price

	providerData              *string
	photoURL                  *string
	photoSize                 *int
	photoWidth                *int
	photoHeight               *int
	needName                  *bool
	needPhoneNumber           *bool
	needEmail                 *bool
	needShippingAddress       *bool
	sendPhoneNumberToProvider *bool
	sendEmailToProvider       *bool
	isFlexible                *bool
	disableNotification       *bool
	replyToMessageID          *int64
	replyMarkup               *string
}

// InvoiceOption sets one optional invoice field.
type InvoiceOption func(*Invoice)

func WithProviderData(data string) InvoiceOption {
	return func(i *Invoice) { i.providerData = &data }
}

func WithPhotoURL(url string) InvoiceOption {
	return func(i *Invoice) { i.photoURL = &url }
}

func WithPhotoSize(size int) InvoiceOption {
	return func(i *Invoice) { i.photoSize = &size }
}

func WithPhotoWidth(width int) InvoiceOption {
	return func(i *Invoice) { i.photoWidth = &width }
}

func WithPhotoHeight(height int) InvoiceOption {
	return func(i *Invoice) { i.photoHeight = &height }
}

func WithNeedName(need bool) InvoiceOption {
	return func(i *Invoice) { i.needName = &need }
}

func WithNeedPhoneNumber(need bool) InvoiceOption {
	return func(i *Invoice) { i.needPhoneNumber = &need }
}

func WithNeedEmail(need bool) InvoiceOption {
	return func(i *Invoice) { i.needEmail = &need }
}

func WithNeedShippingAddress(need bool) InvoiceOption {
	return func(i *Invoice) { i.needShippingAddress = &need }
}

func WithSendPhoneNumberToProvider(send bool) InvoiceOption {
	return func(i *Invoice) { i.sendPhoneNumberToProvider = &send }
}

func WithSendEmailToProvider(send bool) InvoiceOption {
	return func(i *Invoice) { i.sendEmailToProvider = &send }
}

// WithIsFlexible marks the final price as depending on the shipping method.
func WithIsFlexible(flexible bool) InvoiceOption {
	return func(i *Invoice) { i.isFlexible = &flexible }
}

func WithDisableNotification(disable bool) InvoiceOption {
	return func(i *Invoice) { i.disableNotification = &disable }
}

func WithReplyToMessageID(id int64) InvoiceOption {
	return func(i *Invoice) { i.replyToMessageID = &id }
}

// WithReplyMarkup attaches a JSON-serialized inline keyboard. When set, its
// first button must be a Pay button.
func WithReplyMarkup(markup string) InvoiceOption {
	return func(i *Invoice) { i.replyMarkup = &markup }
}

// NewInvoice builds an invoice from its required fields. Optional fields stay
// absent unless an option sets them. prices is copied and its order is kept.
func NewInvoice(
	chatID, title, description, payload, providerToken, startParameter, currency string,
	prices []Price,
	opts ...InvoiceOption,
) Invoice {
	inv := Invoice{
		chatID:         chatID,
		title:          title,
		description:    description,
		payload:        payload,
		providerToken:  providerToken,
		startParameter: startParameter,
		currency:       currency,
		prices:         append([]Price(nil), prices...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&inv)
		}
	}
	return inv
}

// InvoiceFromMapping reads an invoice from a sendInvoice mapping.
// prices may hold Price values or price mappings.
func InvoiceFromMapping(m Params) (Invoice, error) {
	r := newFieldReader("Invoice", m)
	inv := Invoice{
		chatID:         r.identifier("chat_id"),
		title:          r.string("title"),
		description:    r.string("description"),
		payload:        r.string("payload"),
		providerToken:  r.string("provider_token"),
		startParameter: r.string("start_parameter"),
		currency:       r.string("currency"),
	}
	if raw, ok := r.require("prices"); ok {
		prices, err := readPrices(raw)
		if err != nil {
			return Invoice{}, err
		}
		inv.prices = prices
	}

	inv.providerData = r.optString("provider_data")
	inv.photoURL = r.optString("photo_url")
	inv.photoSize = r.optInt("photo_size")
	inv.photoWidth = r.optInt("photo_width")
	inv.photoHeight = r.optInt("photo_height")
	inv.needName = r.optBool("need_name")
	inv.needPhoneNumber = r.optBool("need_phone_number")
	inv.needEmail = r.optBool("need_email")
	inv.needShippingAddress = r.optBool("need_shipping_address")
	inv.sendPhoneNumberToProvider = r.optBool("send_phone_number_to_provider")
	inv.sendEmailToProvider = r.optBool("send_email_to_provider")
	inv.isFlexible = r.optBool("is_flexible")
	inv.disableNotification = r.optBool("disable_notification")
	inv.replyToMessageID = r.optInt64("reply_to_message_id")
	inv.replyMarkup = r.optString("reply_markup")
	if r.err != nil {
		return Invoice{}, r.err
	}

	return inv, nil
}

func readPrices(raw any) ([]Price, error) {
	switch v := raw.(type) {
	case []Price:
		return append([]Price(nil), v...), nil
	case []Params:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return readPriceItems(items)
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return readPriceItems(items)
	case []any:
		return readPriceItems(v)
	default:
		return nil, &InvalidFieldError{Entity: "Invoice", Field: "prices", Want: "a list of prices", Got: raw}
	}
}

func readPriceItems(items []any) ([]Price, error) {
	prices := make([]Price, 0, len(items))
	for i, item := range items {
		if p, ok := item.(Price); ok {
			prices = append(prices, p)
			continue
		}
		m, ok := toParams(item)
		if !ok {
			return nil, &InvalidFieldError{Entity: "Invoice", Field: fmt.Sprintf("prices[%d]", i), Want: "a price mapping", Got: item}
		}
		p, err := PriceFromMapping(m)
		if err != nil {
			return nil, fmt.Errorf("prices[%d]: %w", i, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func (i Invoice) ChatID() string { return i.chatID }

func (i Invoice) Title() string { return i.title }

func (i Invoice) Description() string { return i.description }

func (i Invoice) Payload() string { return i.payload }

func (i Invoice) ProviderToken() string { return i.providerToken }

func (i Invoice) StartParameter() string { return i.startParameter }

func (i Invoice) Currency() string { return i.currency }

// Prices returns a copy of the price breakdown in its original order.
func (i Invoice) Prices() []Price { return append([]Price(nil), i.prices...) }

// TotalAmount sums every price line.
func (i Invoice) TotalAmount() int64 {
	var total int64
	for _, p := range i.prices {
		total += p.amount
	}
	return total
}

// The optional getters report whether the field was supplied.

func (i Invoice) ProviderData() (string, bool) { return deref(i.providerData) }

func (i Invoice) PhotoURL() (string, bool) { return deref(i.photoURL) }

func (i Invoice) PhotoSize() (int, bool) { return deref(i.photoSize) }

func (i Invoice) PhotoWidth() (int, bool) { return deref(i.photoWidth) }

func (i Invoice) PhotoHeight() (int, bool) { return deref(i.photoHeight) }

func (i Invoice) NeedName() (bool, bool) { return deref(i.needName) }

func (i Invoice) NeedPhoneNumber() (bool, bool) { return deref(i.needPhoneNumber) }

func (i Invoice) NeedEmail() (bool, bool) { return deref(i.needEmail) }

func (i Invoice) NeedShippingAddress() (bool, bool) { return deref(i.needShippingAddress) }

func (i Invoice) SendPhoneNumberToProvider() (bool, bool) { return deref(i.sendPhoneNumberToProvider) }

func (i Invoice) SendEmailToProvider() (bool, bool) { return deref(i.sendEmailToProvider) }

func (i Invoice) IsFlexible() (bool, bool) { return deref(i.isFlexible) }

func (i Invoice) DisableNotification() (bool, bool) { return deref(i.disableNotification) }

func (i Invoice) ReplyToMessageID() (int64, bool) { return deref(i.replyToMessageID) }

func (i Invoice) ReplyMarkup() (string, bool) { return deref(i.replyMarkup) }

// ToMapping flattens the invoice into sendInvoice parameters. Optional keys are
// present only when the corresponding option was supplied.
func (i Invoice) ToMapping() Params {
	prices := make([]Params, len(i.prices))
	for idx, p := range i.prices {
		prices[idx] = p.ToMapping()
	}

	m := Params{
		"chat_id":         i.chatID,
		"title":           i.title,
		"description":     i.description,
		"payload":         i.payload,
		"provider_token":  i.providerToken,
		"start_parameter": i.startParameter,
		"currency":        i.currency,
		"prices":          prices,
	}

	putOptional(m, "provider_data", i.providerData)
	putOptional(m, "photo_url", i.photoURL)
	putOptional(m, "photo_size", i.photoSize)
	putOptional(m, "photo_width", i.photoWidth)
	putOptional(m, "photo_height", i.photoHeight)
	putOptional(m, "need_name", i.needName)
	putOptional(m, "need_phone_number", i.needPhoneNumber)
	putOptional(m, "need_email", i.needEmail)
	putOptional(m, "need_shipping_address", i.needShippingAddress)
	putOptional(m, "send_phone_number_to_provider", i.sendPhoneNumberToProvider)
	putOptional(m, "send_email_to_provider", i.sendEmailToProvider)
	putOptional(m, "is_flexible", i.isFlexible)
	putOptional(m, "disable_notification", i.disableNotification)
	putOptional(m, "reply_to_message_id", i.replyToMessageID)
	putOptional(m, "reply_markup", i.replyMarkup)

	return m
}

func putOptional[T any](m Params, key string, value *T) {
	if value != nil {
		m[key] = *value
	}
}

func deref[T any](value *T) (T, bool) {
	if value == nil {
		var zero T
		return zero, false
	}
	return *value, true
}
