package keyboard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/telegram-payments/internal/bot/keyboard"
)

func TestEncodeCallback(t *testing.T) {
	tests := []struct {
		name      string
		action    string
		data      string
		want      string
		wantError bool
	}{
		{
			name:   "with data",
			action: keyboard.ActionBuy,
			data:   "coffee",
			want:   "buy:coffee",
		},
		{
			name:   "without data",
			action: "menu",
			want:   "menu",
		},
		{
			name:      "exceeds limit",
			action:    strings.Repeat("x", keyboard.CallbackDataLimitBytes+1),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyboard.EncodeCallback(tt.action, tt.data)
			if tt.wantError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCallback(t *testing.T) {
	action, data, err := keyboard.DecodeCallback("buy:premium-month")
	require.NoError(t, err)
	assert.Equal(t, keyboard.ActionBuy, action)
	assert.Equal(t, "premium-month", data)

	action, data, err = keyboard.DecodeCallback("menu")
	require.NoError(t, err)
	assert.Equal(t, "menu", action)
	assert.Empty(t, data)

	_, _, err = keyboard.DecodeCallback("")
	assert.Error(t, err)
}
