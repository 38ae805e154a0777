package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ValidateKey returns an error wrapping ErrInvalidKey if key can't be used in
// a request. Keys must be non-empty, valid UTF-8, and must not contain '&',
// '=', whitespace or control characters.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key must be a non-empty string", ErrInvalidKey)
	}
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: key %q is not valid UTF-8", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r == '&' || r == '=':
			return fmt.Errorf("%w: key %q contains '%c'", ErrInvalidKey, key, r)
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return fmt.Errorf("%w: key %q contains whitespace or control characters",
				ErrInvalidKey, key)
		}
	}
	return nil
}

// ValidateValue returns an error wrapping ErrInvalidValue if v can't be
// written to the shard.
func ValidateValue(v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("%w: value is required", ErrInvalidValue)
	case string:
		if val == "" {
			return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
		}
		return nil
	case float64:
		return checkFinite(val)
	case float32:
		return checkFinite(float64(val))
	case json.Number:
		if val == "" {
			return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
		}
		return nil
	case json.RawMessage:
		if len(bytes.TrimSpace(val)) == 0 {
			return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: value is required", ErrInvalidValue)
		}
	}

	return nil
}

// NormalizeValue validates v and returns its wire representation.
//
// Strings are sent unchanged. Integers use base 10 and are lossless. Floats
// use the shortest decimal that round-trips, without exponent notation, so 1e21
// is sent as "1000000000000000000000" and 0.5 as "0.5". Raw JSON is sent
// verbatim, and any other value is JSON encoded.
func NormalizeValue(v any) (string, error) {
	if err := ValidateValue(v); err != nil {
		return "", err
	}

	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return formatFloat(val), nil
	case json.Number:
		return normalizeNumber(val)
	case json.RawMessage:
		trimmed := bytes.TrimSpace(val)
		if !json.Valid(trimmed) {
			return "", fmt.Errorf("%w: raw JSON value is malformed", ErrInvalidValue)
		}
		return string(trimmed), nil
	}

	data, err := encodeJSON(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return string(data), nil
}

func normalizeNumber(n json.Number) (string, error) {
	if _, err := n.Int64(); err == nil {
		return n.String(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidValue, n)
	}
	if err := checkFinite(f); err != nil {
		return "", err
	}
	return formatFloat(f), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v is not a finite number", ErrInvalidValue, f)
	}
	return nil
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

// number is a numeric operand or stored value. f is always set, and i holds
// the same value when it is an integer that fits in an int64.
type number struct {
	i     int64
	f     float64
	exact bool
}

func intNumber(i int64) number {
	return number{i: i, f: float64(i), exact: true}
}

func floatNumber(f float64) number {
	if f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
		return intNumber(int64(f))
	}
	return number{f: f}
}

func uintNumber(u uint64) number {
	if u <= math.MaxInt64 {
		return intNumber(int64(u))
	}
	return number{f: float64(u)}
}

// toNumber converts Go numeric types and json.Number to a number.
func toNumber(v any) (number, bool) {
	switch val := v.(type) {
	case int:
		return intNumber(int64(val)), true
	case int8:
		return intNumber(int64(val)), true
	case int16:
		return intNumber(int64(val)), true
	case int32:
		return intNumber(int64(val)), true
	case int64:
		return intNumber(val), true
	case uint:
		return uintNumber(uint64(val)), true
	case uint8:
		return uintNumber(uint64(val)), true
	case uint16:
		return uintNumber(uint64(val)), true
	case uint32:
		return uintNumber(uint64(val)), true
	case uint64:
		return uintNumber(val), true
	case float32:
		return floatNumber(float64(val)), true
	case float64:
		return floatNumber(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return intNumber(i), true
		}
		f, err := val.Float64()
		if err != nil {
			return number{}, false
		}
		return floatNumber(f), true
	}
	return number{}, false
}

func encodeJSON(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
