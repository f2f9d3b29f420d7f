package handlers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/bot/handlers"
	"github.com/Proton-105/telegram-payments/internal/catalog"
	"github.com/Proton-105/telegram-payments/internal/testutil"
)

func TestMenuHandler(t *testing.T) {
	f := newFixture(t)
	handler := handlers.NewMenuHandler(f.catalog, f.translations, nil)

	c := testutil.NewFakeContext(testutil.TextUpdate("/start"))
	require.NoError(t, handler(c))
	assert.Equal(t, []string{f.translations.Translator("en").T("menu.title")}, c.Sent())
}

func TestMenuHandlerEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	empty, err := catalog.New(nil)
	require.NoError(t, err)

	c := testutil.NewFakeContext(testutil.TextUpdate("/start"))
	require.NoError(t, handlers.NewMenuHandler(empty, f.translations, nil)(c))
	assert.Equal(t, []string{f.translations.Translator("en").T("menu.empty")}, c.Sent())
}

func TestHelpHandler(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(testutil.TextUpdate("/help"))
	require.NoError(t, handlers.NewHelpHandler(f.translations)(c))
	assert.Equal(t, []string{f.translations.Translator("en").T("help")}, c.Sent())
}

func TestRequestContextDefaults(t *testing.T) {
	c := testutil.NewFakeContext(testutil.TextUpdate("hi"))
	assert.NotNil(t, handlers.RequestContext(c))
	assert.NotNil(t, handlers.RequestContext(nil))
}

func TestMenuHandlerReportsSendFailure(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(testutil.TextUpdate("/start"))
	c.SendErr = errors.New("Forbidden: bot was blocked by the user")

	err := handlers.NewMenuHandler(f.catalog, f.translations, nil)(c)
	requireAppError(t, err, "E300")
	assert.ErrorIs(t, err, c.SendErr)

	err = handlers.NewHelpHandler(f.translations)(c)
	requireAppError(t, err, "E300")
}
