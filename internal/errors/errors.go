package errors

import (
	"fmt"
	"time"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries the code, severity and user-facing message key of a failure.
// UserMessage is an i18n key resolved when the user is notified.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: "buy.usage",
		Severity:    SeverityLow,
	}
}

func NewUnknownProductError(sku string, cause error) *AppError {
	return &AppError{
		Code:        "E110",
		Message:     fmt.Sprintf("unknown product %q", sku),
		UserMessage: "buy.unknown_product",
		Severity:    SeverityLow,
		cause:       cause,
	}
}

// NewRateLimitError is returned when a user exceeds the request limit of scope.
func NewRateLimitError(scope string, resetAt time.Time) *AppError {
	return &AppError{
		Code:        "E120",
		Message:     fmt.Sprintf("rate limit exceeded for %s until %s", scope, resetAt.Format(time.RFC3339)),
		UserMessage: "buy.rate_limited",
		Severity:    SeverityLow,
	}
}

func NewInvoiceError(sku string, cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("send invoice for %q: %s", sku, underlyingMsg),
		UserMessage: "buy.failed",
		Severity:    SeverityHigh,
		cause:       cause,
	}
}

func NewExternalAPIError(apiName string, cause error) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("External API error: %s", apiName),
		UserMessage: "errors.generic",
		Severity:    SeverityMedium,
		cause:       cause,
	}
}

// NewPaymentError marks a failure while processing a pre-checkout query or a
// successful payment. Money may be involved, so it is always critical.
func NewPaymentError(stage string, cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E400",
		Message:     fmt.Sprintf("payment %s: %s", stage, underlyingMsg),
		UserMessage: "errors.generic",
		Severity:    SeverityCritical,
		cause:       cause,
	}
}

func NewPanicError(recovered any) *AppError {
	return &AppError{
		Code:        "E900",
		Message:     fmt.Sprintf("panic recovered: %v", recovered),
		UserMessage: "errors.generic",
		Severity:    SeverityCritical,
	}
}
