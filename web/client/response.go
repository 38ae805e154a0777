package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Confirmation is the operation token the shard returns for writes.
type Confirmation string

// Entry is a key/value pair held by the shard.
type Entry struct {
	Key   string
	Value Value
}

// Value is a value fetched from the shard. The zero Value is the absent value.
type Value struct {
	raw json.RawMessage
}

// NewValue returns a Value for the raw JSON document. Empty input and JSON
// null produce the absent value.
func NewValue(raw []byte) Value {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Value{}
	}
	return Value{raw: append(json.RawMessage(nil), trimmed...)}
}

// Exists reports whether the shard holds a value. Unlike Truthy, it is true
// for stored 0, "" and false.
func (v Value) Exists() bool {
	return len(v.raw) > 0
}

// Raw returns a copy of the JSON document, or nil if the value is absent.
func (v Value) Raw() json.RawMessage {
	if !v.Exists() {
		return nil
	}
	return append(json.RawMessage(nil), v.raw...)
}

// Decode unmarshals the value into out. It returns ErrNotFound if the value
// is absent.
func (v Value) Decode(out any) error {
	if !v.Exists() {
		return ErrNotFound
	}
	if err := json.Unmarshal(v.raw, out); err != nil {
		return fmt.Errorf("failed decoding value: %w", err)
	}
	return nil
}

// Any returns the value decoded into generic Go types (float64, string,
// bool, []any, map[string]any), or nil if it is absent.
func (v Value) Any() any {
	if !v.Exists() {
		return nil
	}
	var out any
	if err := json.Unmarshal(v.raw, &out); err != nil {
		return nil
	}
	return out
}

// Number returns the value as a float64. JSON numbers and strings holding a
// finite decimal number are numeric.
func (v Value) Number() (float64, bool) {
	if !v.Exists() {
		return 0, false
	}
	switch v.raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case '{', '[', 't', 'f':
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v.raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the value as an int64 if it is a JSON integer, or a string
// holding one, that fits in 64 bits.
func (v Value) Int64() (int64, bool) {
	if !v.Exists() {
		return 0, false
	}
	text := string(v.raw)
	switch v.raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(s)
	case '{', '[', 't', 'f':
		return 0, false
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (v Value) number() (number, bool) {
	if i, ok := v.Int64(); ok {
		return intNumber(i), true
	}
	f, ok := v.Number()
	if !ok {
		return number{}, false
	}
	return floatNumber(f), true
}

// String returns JSON strings unquoted and any other value as JSON text. The
// absent value is the empty string.
func (v Value) String() string {
	if !v.Exists() {
		return ""
	}
	if v.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	}
	return string(v.raw)
}

// Truthy reports whether the value is set and not one of 0, "" or false.
func (v Value) Truthy() bool {
	switch val := v.Any().(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	}
	return true
}

// MarshalJSON encodes the absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Exists() {
		return []byte("null"), nil
	}
	return v.Raw(), nil
}

// UnmarshalJSON stores a copy of data.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = NewValue(data)
	return nil
}

func decodeObject(op Operation, body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, malformedResponse(op, "empty response body")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || obj == nil {
		return nil, malformedResponse(op, "response is not a JSON object")
	}
	return obj, nil
}

// interpretConfirmation extracts the operation field of a write response.
func interpretConfirmation(op Operation, body []byte) (Confirmation, error) {
	obj, err := decodeObject(op, body)
	if err != nil {
		return "", err
	}
	raw, ok := obj["operation"]
	if !ok {
		return "", malformedResponse(op, "response has no operation confirmation")
	}
	return Confirmation(NewValue(raw).String()), nil
}

// interpretValue extracts the data field of a fetch response. A missing or
// null data field is the absent value, not an error.
func interpretValue(op Operation, body []byte) (Value, error) {
	obj, err := decodeObject(op, body)
	if err != nil {
		return Value{}, err
	}
	return NewValue(obj["data"]), nil
}

// interpretSnapshot accepts either an array of {key, data} objects, kept in
// order, or an object mapping keys to data, ordered by key.
func interpretSnapshot(op Operation, body []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, malformedResponse(op, "empty response body")
	}

	switch trimmed[0] {
	case '[':
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, malformedResponse(op, "malformed snapshot: %w", err)
		}
		entries := make([]Entry, 0, len(items))
		for i, item := range items {
			key, ok := entryKey(item)
			if !ok {
				return nil, malformedResponse(op, "snapshot entry %d has no key", i)
			}
			entries = append(entries, Entry{Key: key, Value: NewValue(item["data"])})
		}
		return entries, nil
	case '{':
		var items map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, malformedResponse(op, "malformed snapshot: %w", err)
		}
		keys := make([]string, 0, len(items))
		for k := range items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Entry{Key: k, Value: NewValue(items[k])})
		}
		return entries, nil
	}

	return nil, malformedResponse(op, "snapshot is neither a JSON array nor an object")
}

func entryKey(item map[string]json.RawMessage) (string, bool) {
	for _, field := range []string{"key", "ID", "id"} {
		raw, ok := item[field]
		if !ok {
			continue
		}
		var key string
		if err := json.Unmarshal(raw, &key); err == nil && key != "" {
			return key, true
		}
	}
	return "", false
}

// interpretLatency returns the server timestamp in Unix milliseconds.
func interpretLatency(op Operation, body []byte) (int64, error) {
	obj, err := decodeObject(op, body)
	if err != nil {
		return 0, err
	}
	raw, ok := obj["ping"]
	if !ok {
		return 0, malformedResponse(op, "response has no ping timestamp")
	}
	ts, err := strconv.ParseInt(NewValue(raw).String(), 10, 64)
	if err != nil {
		return 0, malformedResponse(op, "ping timestamp %s is not an integer", raw)
	}
	return ts, nil
}
