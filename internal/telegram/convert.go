package telegram

import (
	"encoding/json"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/telegram-payments/pkg/payments"
)

// UpdateFromTelebot rebuilds the raw payment mappings of a telebot update.
// telebot decodes optional payment fields into zero values, so an empty
// shipping_option_id or order_info is treated as absent.
func UpdateFromTelebot(u telebot.Update) payments.Update {
	out := payments.Update{
		UpdateID: int64(u.ID),
		Message:  MessageFromTelebot(u.Message),
	}
	if u.PreCheckoutQuery != nil {
		out.PreCheckoutQuery = paymentParams(u.PreCheckoutQuery)
	}
	return out
}

// MessageFromTelebot rebuilds the raw payment mappings of a telebot message.
func MessageFromTelebot(m *telebot.Message) *payments.Message {
	if m == nil {
		return nil
	}

	out := &payments.Message{MessageID: int64(m.ID)}
	if m.Chat != nil {
		out.Chat = toParams(m.Chat)
	}
	if m.Payment != nil {
		out.SuccessfulPayment = paymentParams(m.Payment)
	}
	return out
}

func paymentParams(v any) payments.Params {
	params := toParams(v)
	if params == nil {
		return nil
	}

	if id, ok := params["shipping_option_id"].(string); ok && id == "" {
		delete(params, "shipping_option_id")
	}
	if order, ok := params["order_info"]; ok && isEmpty(order) {
		delete(params, "order_info")
	}
	return params
}

// toParams converts a telebot struct into the mapping its JSON tags describe.
func toParams(v any) payments.Params {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var params payments.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil
	}
	return params
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case map[string]any:
		for _, child := range v {
			if !isEmpty(child) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
