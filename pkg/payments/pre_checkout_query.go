package payments

// PreCheckoutQuery is an incoming pre-checkout query. Its ID must be answered
// exactly once through answerPreCheckoutQuery.
type PreCheckoutQuery struct {
	CommonPaymentFields

	id   string
	from Params
}

// NewPreCheckoutQuery builds a query from its identifier, the user mapping and the shared payment columns.
func NewPreCheckoutQuery(id string, from Params, common CommonPaymentFields) PreCheckoutQuery {
	return PreCheckoutQuery{
		CommonPaymentFields: common,
		id:                  id,
		from:                from.Clone(),
	}
}

// PreCheckoutQueryFromMapping reads a query from the raw pre_checkout_query mapping.
func PreCheckoutQueryFromMapping(m Params) (PreCheckoutQuery, error) {
	r := newFieldReader("PreCheckoutQuery", m)
	id := r.string("id")
	from := r.mapping("from")
	common := readCommonPaymentFields(r)
	if r.err != nil {
		return PreCheckoutQuery{}, r.err
	}

	return PreCheckoutQuery{CommonPaymentFields: common, id: id, from: from}, nil
}

func (q PreCheckoutQuery) ID() string { return q.id }

// From returns a copy of the user who sent the query.
func (q PreCheckoutQuery) From() Params { return q.from.Clone() }
