package payments

import "context"

// Decision is the verdict on a pre-checkout query. The zero value approves.
type Decision struct {
	rejected bool
	reason   string
}

// Approve lets the checkout continue.
func Approve() Decision {
	return Decision{}
}

// Reject stops the checkout; reason is shown to the user.
func Reject(reason string) Decision {
	return Decision{rejected: true, reason: reason}
}

func (d Decision) Approved() bool { return !d.rejected }

// Reason returns the rejection text, or "" for an approval.
func (d Decision) Reason() string { return d.reason }

// PreCheckoutFunc decides whether a checkout may proceed. It is called exactly
// once per query, synchronously, and must report rejection through its result.
type PreCheckoutFunc func(ctx context.Context, query PreCheckoutQuery) Decision

// SuccessFunc fulfils a completed payment. Its result is returned by the handler unmodified.
type SuccessFunc func(ctx context.Context, payment SuccessfulPayment) (any, error)
