package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CallbackDataSeparator  = ":"
	CallbackDataLimitBytes = 64

	// ActionBuy prefixes the callback data of catalog buttons.
	ActionBuy = "buy"
)

// EncodeCallback joins an action and its argument into callback data, enforcing
// Telegram's 64-byte limit.
func EncodeCallback(action, data string) (string, error) {
	payload := action
	if data != "" {
		payload = action + CallbackDataSeparator + data
	}

	if len(payload) > CallbackDataLimitBytes {
		return "", fmt.Errorf("callback data exceeds %d byte limit: got %d", CallbackDataLimitBytes, len(payload))
	}

	return payload, nil
}

// DecodeCallback splits callback data produced by EncodeCallback.
func DecodeCallback(callbackData string) (action, data string, err error) {
	if callbackData == "" {
		return "", "", errors.New("callback data is empty")
	}

	action, data, _ = strings.Cut(callbackData, CallbackDataSeparator)
	return action, data, nil
}
