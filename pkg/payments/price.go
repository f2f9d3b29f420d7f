package payments

// Price is a portion of the price for goods or services (Telegram LabeledPrice).
// Amount is the total for the line in the smallest units of the currency, not a unit price.
type Price struct {
	label  string
	amount int64
}

// NewPrice creates a labeled price component.
func NewPrice(label string, amount int64) Price {
	return Price{label: label, amount: amount}
}

// PriceFromMapping reads a Price from its wire mapping.
func PriceFromMapping(m Params) (Price, error) {
	r := newFieldReader("Price", m)
	label := r.string("label")
	amount := r.int64("amount")
	if r.err != nil {
		return Price{}, r.err
	}

	return NewPrice(label, amount), nil
}

func (p Price) Label() string { return p.label }

func (p Price) Amount() int64 { return p.amount }

// ToMapping flattens the price into its wire mapping.
func (p Price) ToMapping() Params {
	return Params{
		"label":  p.label,
		"amount": p.amount,
	}
}
