package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const payloadSeparator = ":"

// ErrMalformedPayload is returned for invoice payloads this shop did not produce.
var ErrMalformedPayload = errors.New("malformed invoice payload")

// NewPayload returns the invoice payload for one order of sku: "<sku>:<order id>".
func NewPayload(sku string) string {
	return sku + payloadSeparator + uuid.NewString()
}

// ParsePayload splits a payload produced by NewPayload.
func ParsePayload(payload string) (sku, orderID string, err error) {
	sku, orderID, found := strings.Cut(payload, payloadSeparator)
	if !found || sku == "" {
		return "", "", ErrMalformedPayload
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return "", "", ErrMalformedPayload
	}
	return sku, orderID, nil
}
