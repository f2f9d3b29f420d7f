package payments

// CommonPaymentFields holds the columns shared by PreCheckoutQuery and SuccessfulPayment.
//
// TotalAmount is expressed in the smallest units of Currency and equals what the
// provider charged. InvoicePayload is the payload of the originating invoice.
type CommonPaymentFields struct {
	currency         string
	totalAmount      int64
	invoicePayload   string
	shippingOptionID *string
	orderInfo        Params
}

// NewCommonPaymentFields builds the shared payment columns.
// shippingOptionID and orderInfo may be nil to mark them absent.
func NewCommonPaymentFields(currency string, totalAmount int64, invoicePayload string, shippingOptionID *string, orderInfo Params) CommonPaymentFields {
	return CommonPaymentFields{
		currency:         currency,
		totalAmount:      totalAmount,
		invoicePayload:   invoicePayload,
		shippingOptionID: cloneString(shippingOptionID),
		orderInfo:        orderInfo.Clone(),
	}
}

func readCommonPaymentFields(r *fieldReader) CommonPaymentFields {
	return CommonPaymentFields{
		currency:         r.string("currency"),
		totalAmount:      r.int64("total_amount"),
		invoicePayload:   r.string("invoice_payload"),
		shippingOptionID: r.optString("shipping_option_id"),
		orderInfo:        r.optMapping("order_info"),
	}
}

func (c CommonPaymentFields) Currency() string { return c.currency }

func (c CommonPaymentFields) TotalAmount() int64 { return c.totalAmount }

func (c CommonPaymentFields) InvoicePayload() string { return c.invoicePayload }

// ShippingOptionID reports the shipping option chosen by the user, if any.
func (c CommonPaymentFields) ShippingOptionID() (string, bool) {
	return deref(c.shippingOptionID)
}

// OrderInfo returns a copy of the order info mapping, or nil when absent.
func (c CommonPaymentFields) OrderInfo() Params {
	return c.orderInfo.Clone()
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
