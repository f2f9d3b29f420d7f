package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// RawAPI is the part of *telebot.Bot the client calls.
type RawAPI interface {
	Raw(method string, payload interface{}) ([]byte, error)
}

var _ RawAPI = (*telebot.Bot)(nil)

var errNotInitialized = errors.New("telegram client is not initialized")

// Client implements payments.Transport on top of the telebot raw API.
type Client struct {
	api RawAPI
	me  *telebot.User
}

var _ payments.Transport = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithIdentity sets the bot account reported by HealthCheck.
func WithIdentity(me *telebot.User) ClientOption {
	return func(c *Client) {
		c.me = me
	}
}

// NewClient wraps api, usually a *telebot.Bot, whose resolved identity is
// picked up automatically.
func NewClient(api RawAPI, opts ...ClientOption) *Client {
	c := &Client{api: api}
	if bot, ok := api.(*telebot.Bot); ok && bot != nil {
		c.me = bot.Me
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SendInvoice calls sendInvoice with params.
func (c *Client) SendInvoice(ctx context.Context, params payments.Params) (*payments.Response, error) {
	return c.call(ctx, payments.MethodSendInvoice, params)
}

// AnswerPreCheckoutQuery calls answerPreCheckoutQuery with params.
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, params payments.Params) (*payments.Response, error) {
	return c.call(ctx, payments.MethodAnswerPreCheckoutQuery, params)
}

// HealthCheck reports whether the bot identity was resolved at startup.
// It makes no request to Telegram.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.me == nil || c.me.ID == 0 {
		return errors.New("telegram bot identity is not resolved")
	}
	return nil
}

// call cannot abort an in-flight request; ctx is only checked before sending.
// Telebot API errors are returned unchanged.
func (c *Client) call(ctx context.Context, method string, params payments.Params) (*payments.Response, error) {
	if c == nil || c.api == nil {
		return nil, errNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload interface{}
	if params != nil {
		payload = params
	}

	data, err := c.api.Raw(method, payload)
	if err != nil {
		return nil, err
	}

	var resp payments.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}

	return &resp, nil
}
