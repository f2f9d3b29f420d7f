// Package testutil holds fakes shared by the bot tests.
package testutil

import (
	"fmt"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"
)

// FakeContext is a telebot.Context backed by a fixed update. Methods it does
// not override panic through the nil embedded interface.
type FakeContext struct {
	telebot.Context

	mu        sync.Mutex
	update    telebot.Update
	store     map[string]any
	sent      []any
	responded int

	// SendErr is returned by Send.
	SendErr error
}

// NewFakeContext wraps u.
func NewFakeContext(u telebot.Update) *FakeContext {
	return &FakeContext{update: u, store: make(map[string]any)}
}

// TextUpdate builds a private text message from user 42.
func TextUpdate(text string) telebot.Update {
	user := &telebot.User{ID: 42, FirstName: "Ada", LanguageCode: "en"}
	msg := &telebot.Message{
		ID:     1,
		Sender: user,
		Chat:   &telebot.Chat{ID: 42, Type: telebot.ChatPrivate},
		Text:   text,
	}
	if strings.HasPrefix(text, "/") {
		if _, payload, ok := strings.Cut(text, " "); ok {
			msg.Payload = payload
		}
	}
	return telebot.Update{ID: 1, Message: msg}
}

// CallbackUpdate builds a callback query from user 42 with data.
func CallbackUpdate(data string) telebot.Update {
	user := &telebot.User{ID: 42, FirstName: "Ada", LanguageCode: "en"}
	return telebot.Update{
		ID: 2,
		Callback: &telebot.Callback{
			ID:     "cb1",
			Sender: user,
			Data:   data,
			Message: &telebot.Message{
				ID:   10,
				Chat: &telebot.Chat{ID: 42, Type: telebot.ChatPrivate},
			},
		},
	}
}

func (c *FakeContext) Update() telebot.Update { return c.update }

func (c *FakeContext) Message() *telebot.Message {
	switch {
	case c.update.Message != nil:
		return c.update.Message
	case c.update.Callback != nil:
		return c.update.Callback.Message
	default:
		return nil
	}
}

func (c *FakeContext) Callback() *telebot.Callback { return c.update.Callback }

func (c *FakeContext) PreCheckoutQuery() *telebot.PreCheckoutQuery { return c.update.PreCheckoutQuery }

func (c *FakeContext) Sender() *telebot.User {
	switch {
	case c.update.Callback != nil:
		return c.update.Callback.Sender
	case c.update.PreCheckoutQuery != nil:
		return c.update.PreCheckoutQuery.Sender
	case c.update.Message != nil:
		return c.update.Message.Sender
	default:
		return nil
	}
}

func (c *FakeContext) Chat() *telebot.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *FakeContext) Text() string {
	if m := c.Message(); m != nil {
		return m.Text
	}
	return ""
}

func (c *FakeContext) Args() []string {
	switch {
	case c.update.Callback != nil:
		return strings.Split(c.update.Callback.Data, "|")
	case c.update.Message != nil:
		if payload := strings.TrimSpace(c.update.Message.Payload); payload != "" {
			return strings.Fields(payload)
		}
	}
	return nil
}

func (c *FakeContext) Send(what interface{}, _ ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, what)
	return c.SendErr
}

func (c *FakeContext) Respond(_ ...*telebot.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responded++
	return nil
}

func (c *FakeContext) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
}

func (c *FakeContext) Get(key string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

// Sent returns everything passed to Send, formatted as text.
func (c *FakeContext) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.sent))
	for i, what := range c.sent {
		out[i] = fmt.Sprint(what)
	}
	return out
}

// Responded counts callback answers.
func (c *FakeContext) Responded() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.responded
}
