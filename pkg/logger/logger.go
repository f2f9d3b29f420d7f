package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how New builds the application logger.
type Options struct {
	Level  string
	Format string // "json" or "text"

	// File switches output from stdout to a rotated log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// SentryHub, when set, receives error-level records.
	SentryHub *sentry.Hub
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates the application logger. The returned closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		out, closer = rotated, rotated
	}

	log, err := NewWithWriter(out, opts)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	return log, closer, nil
}

// NewWithWriter builds the handler chain on top of w:
// masking, then correlation ids, then the output (and Sentry) handlers.
func NewWithWriter(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	var base slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "json":
		base = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		base = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	handlers := []slog.Handler{base}
	if opts.SentryHub != nil {
		handlers = append(handlers, slogsentry.Option{
			Level: slog.LevelError,
			Hub:   opts.SentryHub,
		}.NewSentryHandler())
	}

	chain := NewMaskingHandler(&contextHandler{next: slogmulti.Fanout(handlers...)})
	return slog.New(chain), nil
}
