package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	payload := NewPayload("premium-month")

	sku, orderID, err := ParsePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "premium-month", sku)
	assert.Len(t, orderID, 36)

	for _, bad := range []string{"", "coffee", ":" + orderID, "coffee:not-a-uuid"} {
		_, _, err := ParsePayload(bad)
		assert.ErrorIs(t, err, ErrMalformedPayload, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{amount: 25, currency: "XTR", want: "25 XTR"},
		{amount: 1050, currency: "usd", want: "10.50 USD"},
		{amount: 5, currency: "EUR", want: "0.05 EUR"},
		{amount: -1999, currency: "USD", want: "-19.99 USD"},
		{amount: 500, currency: "JPY", want: "500 JPY"},
		{amount: math.MinInt64, currency: "USD", want: "-92233720368547758.08 USD"},
		{amount: math.MaxInt64, currency: "USD", want: "92233720368547758.07 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}
