package client

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		err  error
	}{
		{name: "ok/simple", key: "users/42"},
		{name: "ok/unicode", key: "ключ:ü"},
		{name: "ok/reserved_url_chars", key: "a?b#c%d+e"},
		{name: "err/empty", key: "", err: ErrInvalidKey},
		{name: "err/ampersand", key: "a&b", err: ErrInvalidKey},
		{name: "err/equals", key: "a=b", err: ErrInvalidKey},
		{name: "err/space", key: "a b", err: ErrInvalidKey},
		{name: "err/newline", key: "a\nb", err: ErrInvalidKey},
		{name: "err/invalid_utf8", key: "a\xffb", err: ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateKey(tt.key)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any

	tests := []struct {
		name  string
		value any
		want  string
		err   error
	}{
		{name: "ok/string", value: "hello world", want: "hello world"},
		{name: "ok/int", value: 42, want: "42"},
		{name: "ok/negative_int64", value: int64(-7), want: "-7"},
		{name: "ok/uint64_max", value: uint64(math.MaxUint64), want: "18446744073709551615"},
		{name: "ok/float", value: 0.5, want: "0.5"},
		{name: "ok/float_integral", value: 15.0, want: "15"},
		{name: "ok/float_large", value: 1e21, want: "1000000000000000000000"},
		{name: "ok/float32", value: float32(0.1), want: "0.1"},
		{name: "ok/json_number_int", value: json.Number("10"), want: "10"},
		{name: "ok/json_number_exp", value: json.Number("2.5e1"), want: "25"},
		{name: "ok/raw_json", value: json.RawMessage(` {"a": 1} `), want: `{"a": 1}`},
		{name: "ok/bool", value: false, want: "false"},
		{name: "ok/map", value: map[string]any{"score": 3, "tag": "<b>"}, want: `{"score":3,"tag":"<b>"}`},
		{name: "ok/slice", value: []int{1, 2}, want: "[1,2]"},
		{name: "err/nil", value: nil, err: ErrInvalidValue},
		{name: "err/empty_string", value: "", err: ErrInvalidValue},
		{name: "err/nan", value: math.NaN(), err: ErrInvalidValue},
		{name: "err/inf", value: math.Inf(1), err: ErrInvalidValue},
		{name: "err/nil_map", value: nilMap, err: ErrInvalidValue},
		{name: "err/bad_json_number", value: json.Number("abc"), err: ErrInvalidValue},
		{name: "err/bad_raw_json", value: json.RawMessage(`{"a":`), err: ErrInvalidValue},
		{name: "err/unencodable", value: make(chan int), err: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeValue(tt.value)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
