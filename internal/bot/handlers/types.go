package handlers

import (
	"context"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/internal/i18n"
)

// Handler processes bot updates.
type Handler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler

// requestContextKey is the telebot context slot holding the request context.
const requestContextKey = "request_context"

// WithRequestContext attaches ctx to the update being handled.
func WithRequestContext(c telebot.Context, ctx context.Context) {
	if c != nil {
		c.Set(requestContextKey, ctx)
	}
}

// RequestContext returns the context attached by WithRequestContext, or context.Background.
func RequestContext(c telebot.Context) context.Context {
	if c != nil {
		if ctx, ok := c.Get(requestContextKey).(context.Context); ok && ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

// Translator picks the translator matching the sender language.
func Translator(m *i18n.Manager, c telebot.Context) i18n.Translator {
	lang := ""
	if c != nil && c.Sender() != nil {
		lang = c.Sender().LanguageCode
	}
	return m.Translator(lang)
}
