package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "", want: slog.LevelInfo},
		{name: "INFO", want: slog.LevelInfo},
		{name: "notice", want: LevelNotice},
		{name: "warning", want: slog.LevelWarn},
		{name: " error ", want: slog.LevelError},
		{name: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoticeLevelName(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, Options{Level: "notice", Format: "json"})
	require.NoError(t, err)

	log.Info("filtered out")
	log.Log(context.Background(), LevelNotice, "invoice has been sent")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "NOTICE", entry["level"])
	assert.Equal(t, "invoice has been sent", entry["msg"])
}
