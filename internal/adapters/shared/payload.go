package shared

import (
	"bytes"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Payload is one decoded wire object. Accessors take an ordered list of
// candidate keys and return the first value present, together with an explicit
// presence flag; absent optional fields never panic and never invent values.
type Payload map[string]any

// DecodeObject decodes body into a Payload, preserving numeric precision by
// decoding numbers as json.Number.
func DecodeObject(body []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out Payload
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeList decodes body into a list of raw values with numbers preserved as
// json.Number.
func DecodeList(body []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out []any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// AsPayload converts a decoded value into a Payload when it is an object.
func AsPayload(v any) (Payload, bool) {
	switch t := v.(type) {
	case Payload:
		return t, true
	case map[string]any:
		return Payload(t), true
	default:
		return nil, false
	}
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// String returns the first present value among keys, rendered as a string.
func (p Payload) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := stringify(v); ok {
			return s, true
		}
	}
	return "", false
}

// StringOr returns the first present value among keys or def when none is set.
func (p Payload) StringOr(def string, keys ...string) string {
	if s, ok := p.String(keys...); ok {
		return s
	}
	return def
}

// LowerString returns the first present value among keys, lowercased.
func (p Payload) LowerString(keys ...string) (string, bool) {
	s, ok := p.String(keys...)
	if !ok {
		return "", false
	}
	return strings.ToLower(s), true
}

// Int64 returns the first present value among keys as an integer.
func (p Payload) Int64(keys ...string) (int64, bool) {
	s, ok := p.String(keys...)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Timestamp returns the first present value among keys as epoch milliseconds.
// Zero means unset: venues emit 0 for "never happened" timestamps.
func (p Payload) Timestamp(keys ...string) int64 {
	n, ok := p.Int64(keys...)
	if !ok || n <= 0 {
		return 0
	}
	return n
}

// TimestampSeconds reads an epoch-seconds field and returns milliseconds.
// Fractional seconds ("1643950262.68") are handled.
func (p Payload) TimestampSeconds(keys ...string) int64 {
	s, ok := p.String(keys...)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int64(f * 1000)
}

// Bool returns the first present value among keys as a boolean.
func (p Payload) Bool(keys ...string) (bool, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t)))
			if err == nil {
				return b, true
			}
		}
	}
	return false, false
}

// Object returns the first present value among keys as a nested Payload.
func (p Payload) Object(keys ...string) (Payload, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		if obj, ok := AsPayload(v); ok {
			return obj, true
		}
	}
	return nil, false
}

// List returns the first present value among keys as a slice of raw values.
func (p Payload) List(keys ...string) ([]any, bool) {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		if list, ok := v.([]any); ok {
			return list, true
		}
	}
	return nil, false
}

// StringAt renders the list element at idx as a string. Used for the
// positional-array wire shapes some endpoints emit instead of keyed objects.
func StringAt(list []any, idx int) (string, bool) {
	if idx < 0 || idx >= len(list) {
		return "", false
	}
	return stringify(list[idx])
}

// Int64At renders the list element at idx as an integer.
func Int64At(list []any, idx int) (int64, bool) {
	s, ok := StringAt(list, idx)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
