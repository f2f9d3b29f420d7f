package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	apperrors "github.com/Proton-105/telegram-payments/internal/errors"
	"github.com/Proton-105/telegram-payments/internal/i18n"
	"github.com/Proton-105/telegram-payments/internal/testutil"
	"github.com/Proton-105/telegram-payments/pkg/logger"
)

func loadTranslations(t *testing.T) *i18n.Manager {
	t.Helper()
	translations, err := i18n.Load("en")
	require.NoError(t, err)
	return translations
}

func TestCorrelationMiddlewareAttachesID(t *testing.T) {
	var id string
	h := CorrelationMiddleware(func(c telebot.Context) error {
		id = logger.CorrelationIDFromContext(handlers.RequestContext(c))
		return nil
	})

	require.NoError(t, h(testutil.NewFakeContext(testutil.TextUpdate("hi"))))
	assert.NotEmpty(t, id)
}

func TestRecoveryMiddlewareNotifiesUser(t *testing.T) {
	translations := loadTranslations(t)
	h := RecoveryMiddleware(nil, apperrors.NewHandler(nil, nil), translations)(func(telebot.Context) error {
		panic("boom")
	})

	c := testutil.NewFakeContext(testutil.TextUpdate("/buy coffee"))
	require.NoError(t, h(c))
	assert.Equal(t, []string{translations.Translator("en").T("errors.generic")}, c.Sent())
}

func TestErrorHandlingMiddlewareTranslatesAppErrors(t *testing.T) {
	translations := loadTranslations(t)
	mw := ErrorHandlingMiddleware(nil, apperrors.NewHandler(nil, nil), translations)

	tests := []struct {
		name string
		err  error
		key  string
	}{
		{name: "unknown product", err: apperrors.NewUnknownProductError("tea", errors.New("missing")), key: "buy.unknown_product"},
		{name: "validation", err: apperrors.NewValidationError("no sku"), key: "buy.usage"},
		{name: "plain error", err: errors.New("boom"), key: "errors.generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testutil.NewFakeContext(testutil.TextUpdate("/buy"))
			h := mw(func(telebot.Context) error { return tt.err })

			require.NoError(t, h(c))
			assert.Equal(t, []string{translations.Translator("en").T(tt.key)}, c.Sent())
		})
	}
}

func TestErrorHandlingMiddlewareSkipsChatlessUpdates(t *testing.T) {
	mw := ErrorHandlingMiddleware(nil, apperrors.NewHandler(nil, nil), loadTranslations(t))
	c := testutil.NewFakeContext(telebot.Update{PreCheckoutQuery: &telebot.PreCheckoutQuery{ID: "q1"}})

	require.NoError(t, mw(func(telebot.Context) error { return errors.New("boom") })(c))
	assert.Empty(t, c.Sent())
}
