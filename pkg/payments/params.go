// Package payments adapts the Telegram Payments API (sendInvoice, pre-checkout
// queries and successful payments) to a request/response transport.
package payments

import (
	"encoding/json"
	"maps"
	"math"
	"sort"
	"strconv"
)

// Params is a flat key/value mapping exchanged with the transport.
// It is also the source every inbound payload is deserialized from.
type Params map[string]any

// Clone returns a shallow copy of p. A nil mapping stays nil.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Keys returns the mapping keys in lexical order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// fieldReader reads typed values out of a mapping and keeps the first failure.
// Once err is set every further read is a no-op returning the zero value.
type fieldReader struct {
	entity string
	src    Params
	err    error
}

func newFieldReader(entity string, src Params) *fieldReader {
	return &fieldReader{entity: entity, src: src}
}

// lookup treats a JSON null the same as an absent key.
func (r *fieldReader) lookup(key string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	value, ok := r.src[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func (r *fieldReader) require(key string) (any, bool) {
	value, ok := r.lookup(key)
	if !ok && r.err == nil {
		r.err = &MissingFieldError{Entity: r.entity, Field: key}
	}
	return value, ok
}

func (r *fieldReader) invalid(key, want string, got any) {
	r.err = &InvalidFieldError{Entity: r.entity, Field: key, Want: want, Got: got}
}

func (r *fieldReader) string(key string) string {
	value, ok := r.require(key)
	if !ok {
		return ""
	}
	return r.asString(key, value)
}

func (r *fieldReader) optString(key string) *string {
	value, ok := r.lookup(key)
	if !ok {
		return nil
	}
	s := r.asString(key, value)
	if r.err != nil {
		return nil
	}
	return &s
}

func (r *fieldReader) asString(key string, value any) string {
	s, ok := value.(string)
	if !ok {
		r.invalid(key, "a string", value)
		return ""
	}
	return s
}

// identifier accepts either a string or an integral number, as chat ids are sent both ways.
func (r *fieldReader) identifier(key string) string {
	value, ok := r.require(key)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	n, ok := toInt64(value)
	if !ok {
		r.invalid(key, "a string or an integer", value)
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func (r *fieldReader) int64(key string) int64 {
	value, ok := r.require(key)
	if !ok {
		return 0
	}
	n, ok := toInt64(value)
	if !ok {
		r.invalid(key, "an integer", value)
		return 0
	}
	return n
}

func (r *fieldReader) optInt64(key string) *int64 {
	value, ok := r.lookup(key)
	if !ok {
		return nil
	}
	n, ok := toInt64(value)
	if !ok {
		r.invalid(key, "an integer", value)
		return nil
	}
	return &n
}

func (r *fieldReader) optInt(key string) *int {
	n := r.optInt64(key)
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func (r *fieldReader) optBool(key string) *bool {
	value, ok := r.lookup(key)
	if !ok {
		return nil
	}
	b, ok := value.(bool)
	if !ok {
		r.invalid(key, "a boolean", value)
		return nil
	}
	return &b
}

func (r *fieldReader) mapping(key string) Params {
	value, ok := r.require(key)
	if !ok {
		return nil
	}
	return r.asMapping(key, value)
}

func (r *fieldReader) optMapping(key string) Params {
	value, ok := r.lookup(key)
	if !ok {
		return nil
	}
	return r.asMapping(key, value)
}

func (r *fieldReader) asMapping(key string, value any) Params {
	m, ok := toParams(value)
	if !ok {
		r.invalid(key, "a mapping", value)
		return nil
	}
	return m.Clone()
}

func toParams(value any) (Params, bool) {
	switch v := value.(type) {
	case Params:
		return v, true
	case map[string]any:
		return Params(v), true
	default:
		return nil, false
	}
}

// toInt64 accepts native integers as well as the float64 and json.Number
// values produced by encoding/json. Fractional numbers and floats outside the
// int64 range are rejected.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || v >= 0x1p63 || v < -0x1p63 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
