package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/i18n"
)

func TestLoadEmbedded(t *testing.T) {
	m, err := i18n.Load("en")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"en", "ru"}, m.Languages())
	assert.Equal(t, "Pay 25 XTR", m.Translator("en").Tf("buy.pay_button", "25 XTR"))
	assert.Equal(t, "ru", m.Translator("ru-RU").Lang())
	assert.Equal(t, "en", m.Translator("de").Lang())
	assert.Equal(t, "en", m.Translator("").Lang())
}

func TestTranslatorFallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml":   {Data: []byte("en:\n  greeting: Hello\n  nested:\n    farewell: Bye\n")},
		"de.yml":    {Data: []byte("de:\n  greeting: Hallo\n  nested:\n    farewell: \"\"\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	m, err := i18n.LoadFS(fsys, "EN")
	require.NoError(t, err)

	de := m.Translator("de_AT")
	assert.Equal(t, "Hallo", de.T("greeting"))
	assert.Equal(t, "Bye", de.T("nested.farewell"))
	assert.Equal(t, "missing.key", de.T("missing.key"))
	assert.Empty(t, de.T("  "))
}

func TestLoadFSErrors(t *testing.T) {
	_, err := i18n.LoadFS(fstest.MapFS{"readme.md": {Data: []byte("#")}}, "en")
	assert.Error(t, err)

	_, err = i18n.LoadFS(fstest.MapFS{"ru.yaml": {Data: []byte("ru:\n  a: b\n")}}, "en")
	assert.ErrorContains(t, err, `default language "en" is missing`)

	_, err = i18n.LoadFS(fstest.MapFS{"en.yaml": {Data: []byte("en: [unclosed")}}, "en")
	assert.ErrorContains(t, err, "parse file en.yaml")
}

func TestNilManager(t *testing.T) {
	var m *i18n.Manager
	assert.Equal(t, "errors.generic", m.Translator("en").T("errors.generic"))
	assert.Nil(t, m.Languages())
}
