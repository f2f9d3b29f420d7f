package config

import "time"

// Config holds runtime configuration for the payments bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Bot      BotConfig      `mapstructure:"bot"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
}

// BotConfig configures the Telegram connection.
type BotConfig struct {
	Token           string        `mapstructure:"token" validate:"required"`
	Mode            string        `mapstructure:"mode" validate:"oneof=polling webhook"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	WebhookListen   string        `mapstructure:"webhook_listen" validate:"required_if=Mode webhook"`
	WebhookURL      string        `mapstructure:"webhook_url" validate:"required_if=Mode webhook"`
	DefaultLanguage string        `mapstructure:"default_language" validate:"required,len=2"`
}

// PaymentsConfig describes the payment provider and the products on sale.
type PaymentsConfig struct {
	// ProviderToken comes from BotFather. It stays empty for Telegram Stars (XTR).
	ProviderToken  string          `mapstructure:"provider_token"`
	StartParameter string          `mapstructure:"start_parameter" validate:"required,max=64"`
	Products       []ProductConfig `mapstructure:"products" validate:"required,min=1,dive"`

	// InvoiceLimit invoices per user within InvoiceWindow. Zero disables the limit.
	InvoiceLimit  int           `mapstructure:"invoice_limit" validate:"gte=0"`
	InvoiceWindow time.Duration `mapstructure:"invoice_window" validate:"gte=0"`
}

// ProductConfig is one catalog entry.
type ProductConfig struct {
	SKU                 string        `mapstructure:"sku" validate:"required,max=60,excludes=:"`
	Title               string        `mapstructure:"title" validate:"required,max=32"`
	Description         string        `mapstructure:"description" validate:"required,max=255"`
	Currency            string        `mapstructure:"currency" validate:"required,len=3,uppercase"`
	Prices              []PriceConfig `mapstructure:"prices" validate:"required,min=1,dive"`
	PhotoURL            string        `mapstructure:"photo_url" validate:"omitempty,url"`
	PhotoWidth          int           `mapstructure:"photo_width" validate:"gte=0"`
	PhotoHeight         int           `mapstructure:"photo_height" validate:"gte=0"`
	NeedName            bool          `mapstructure:"need_name"`
	NeedEmail           bool          `mapstructure:"need_email"`
	NeedPhoneNumber     bool          `mapstructure:"need_phone_number"`
	NeedShippingAddress bool          `mapstructure:"need_shipping_address"`
	IsFlexible          bool          `mapstructure:"is_flexible"`
}

// PriceConfig is one labeled price line, amount in the smallest currency units.
type PriceConfig struct {
	Label  string `mapstructure:"label" validate:"required"`
	Amount int64  `mapstructure:"amount"`
}

// LogConfig configures the slog handler chain.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info notice warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// ServerConfig configures the ops HTTP server (metrics and probes).
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DSN         string `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string `mapstructure:"environment"`
}
