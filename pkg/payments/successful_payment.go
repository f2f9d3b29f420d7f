package payments

// SuccessfulPayment describes a payment Telegram has already committed.
type SuccessfulPayment struct {
	CommonPaymentFields

	telegramPaymentChargeID string
	providerPaymentChargeID string
}

// NewSuccessfulPayment builds a payment record from both charge identifiers and the shared payment columns.
func NewSuccessfulPayment(telegramChargeID, providerChargeID string, common CommonPaymentFields) SuccessfulPayment {
	return SuccessfulPayment{
		CommonPaymentFields:     common,
		telegramPaymentChargeID: telegramChargeID,
		providerPaymentChargeID: providerChargeID,
	}
}

// SuccessfulPaymentFromMapping reads a payment from the raw successful_payment mapping.
func SuccessfulPaymentFromMapping(m Params) (SuccessfulPayment, error) {
	r := newFieldReader("SuccessfulPayment", m)
	common := readCommonPaymentFields(r)
	telegramChargeID := r.string("telegram_payment_charge_id")
	providerChargeID := r.string("provider_payment_charge_id")
	if r.err != nil {
		return SuccessfulPayment{}, r.err
	}

	return NewSuccessfulPayment(telegramChargeID, providerChargeID, common), nil
}

func (p SuccessfulPayment) TelegramPaymentChargeID() string { return p.telegramPaymentChargeID }

func (p SuccessfulPayment) ProviderPaymentChargeID() string { return p.providerPaymentChargeID }
