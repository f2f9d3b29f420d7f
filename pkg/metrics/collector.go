package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pre-checkout outcomes.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of handled bot updates labeled by kind and status",
		},
		[]string{"kind", "status"},
	)
	updateDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_update_duration_seconds",
			Help:    "Duration of bot update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	invoicesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_invoices_sent_total",
			Help: "Total number of invoices sent labeled by product and status",
		},
		[]string{"sku", "status"},
	)
	preCheckoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_pre_checkout_queries_total",
			Help: "Total number of answered pre-checkout queries labeled by outcome",
		},
		[]string{"outcome"},
	)
	successfulPaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_successful_total",
			Help: "Total number of successful payments labeled by currency",
		},
		[]string{"currency"},
	)
	paidAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_amount_total",
			Help: "Sum of successful payment amounts in the smallest currency units",
		},
		[]string{"currency"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by type and severity",
		},
		[]string{"type", "severity"},
	)
)

// RecordUpdate increments update counters and records handling duration.
func RecordUpdate(kind, status string, duration time.Duration) {
	kind = orUnknown(kind)
	updatesTotal.WithLabelValues(kind, orUnknown(status)).Inc()
	updateDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordInvoice counts a sendInvoice attempt.
func RecordInvoice(sku string, err error) {
	invoicesSentTotal.WithLabelValues(orUnknown(sku), status(err)).Inc()
}

// RecordPreCheckout counts an answered pre-checkout query.
func RecordPreCheckout(outcome string) {
	preCheckoutTotal.WithLabelValues(orUnknown(outcome)).Inc()
}

// RecordPayment counts a successful payment and adds its amount.
func RecordPayment(currency string, amount int64) {
	currency = orUnknown(currency)
	successfulPaymentsTotal.WithLabelValues(currency).Inc()
	if amount > 0 {
		paidAmountTotal.WithLabelValues(currency).Add(float64(amount))
	}
}

// RecordError increments error counters with metadata.
func RecordError(errType, severity string) {
	errorsTotal.WithLabelValues(orUnknown(errType), orUnknown(severity)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func orUnknown(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
