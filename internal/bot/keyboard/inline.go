package keyboard

import (
	"encoding/json"
	"errors"
	"fmt"

	telebot "gopkg.in/telebot.v3"
)

// ErrPayButton is returned by Build for rows holding a Pay button, which telebot markup cannot express.
var ErrPayButton = errors.New("pay buttons are only supported by JSON")

// InlineButton is a button definition accumulated by InlineKeyboardBuilder.
type InlineButton struct {
	Text   string
	Action string // Callback action, e.g. ActionBuy.
	Data   string // Action argument encoded after the separator.
	Pay    bool   // Renders a Pay button; Action and Data are ignored.
}

// InlineKeyboardBuilder accumulates rows of buttons before rendering telebot markup.
type InlineKeyboardBuilder struct {
	rows [][]InlineButton
}

// NewInlineKeyboard creates an empty builder.
func NewInlineKeyboard() *InlineKeyboardBuilder {
	return &InlineKeyboardBuilder{rows: make([][]InlineButton, 0)}
}

// AddRow appends a row. Empty rows are skipped.
func (b *InlineKeyboardBuilder) AddRow(buttons ...InlineButton) *InlineKeyboardBuilder {
	if len(buttons) == 0 {
		return b
	}

	row := make([]InlineButton, len(buttons))
	copy(row, buttons)
	b.rows = append(b.rows, row)
	return b
}

// Build renders the rows, failing when callback data would exceed the Telegram limit.
func (b *InlineKeyboardBuilder) Build() (*telebot.ReplyMarkup, error) {
	inlineKeyboard := make([][]telebot.InlineButton, len(b.rows))
	for i, row := range b.rows {
		inlineKeyboard[i] = make([]telebot.InlineButton, len(row))
		for j, btn := range row {
			if btn.Pay {
				return nil, ErrPayButton
			}

			data, err := EncodeCallback(btn.Action, btn.Data)
			if err != nil {
				return nil, err
			}
			inlineKeyboard[i][j] = telebot.InlineButton{Text: btn.Text, Data: data}
		}
	}

	return &telebot.ReplyMarkup{InlineKeyboard: inlineKeyboard}, nil
}

// JSON renders the rows as a serialized reply_markup, the form sendInvoice expects.
func (b *InlineKeyboardBuilder) JSON() (string, error) {
	rows := make([][]wireButton, len(b.rows))
	for i, row := range b.rows {
		rows[i] = make([]wireButton, len(row))
		for j, btn := range row {
			if btn.Pay {
				rows[i][j] = wireButton{Text: btn.Text, Pay: true}
				continue
			}

			data, err := EncodeCallback(btn.Action, btn.Data)
			if err != nil {
				return "", err
			}
			rows[i][j] = wireButton{Text: btn.Text, CallbackData: data}
		}
	}

	data, err := json.Marshal(wireMarkup{InlineKeyboard: rows})
	if err != nil {
		return "", fmt.Errorf("encode inline keyboard: %w", err)
	}
	return string(data), nil
}

// wireButton pins the exact JSON shape of an inline button. A Pay button must
// not carry any other action field.
type wireButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	Pay          bool   `json:"pay,omitempty"`
}

type wireMarkup struct {
	InlineKeyboard [][]wireButton `json:"inline_keyboard"`
}
