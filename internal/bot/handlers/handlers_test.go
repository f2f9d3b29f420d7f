package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/catalog"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/testutil"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

type fixture struct {
	transport    *testutil.RecordingTransport
	payments     *payments.Handler
	catalog      *catalog.Catalog
	translations *i18n.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat, err := catalog.New([]catalog.Product{
		{
			SKU:         "coffee",
			Title:       "Coffee",
			Description: "A cup of coffee",
			Currency:    "XTR",
			Prices:      []payments.Price{payments.NewPrice("Coffee", 25)},
		},
	})
	require.NoError(t, err)

	translations, err := i18n.Load("en")
	require.NoError(t, err)

	transport := &testutil.RecordingTransport{}
	return &fixture{
		transport:    transport,
		payments:     payments.NewHandler(transport),
		catalog:      cat,
		translations: translations,
	}
}
