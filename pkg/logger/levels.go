package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelNotice sits between Info and Warn. It marks significant business events
// such as an invoice sent or a payment received.
const LevelNotice = slog.Level(2)

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// replaceLevel prints LevelNotice as NOTICE instead of INFO+2.
func replaceLevel(groups []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey || len(groups) > 0 {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelNotice {
		attr.Value = slog.StringValue("NOTICE")
	}
	return attr
}
