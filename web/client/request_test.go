package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTarget(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name  string
		base  string
		op    Operation
		key   string
		value *string
		want  string
	}{
		{
			name: "ok/set", base: "http://shard:2020", op: OpSet,
			key: "count", value: strPtr("15"),
			want: "http://shard:2020/set?count=15",
		},
		{
			name: "ok/set_escaped", base: "http://shard:2020", op: OpSet,
			key: "users/ann", value: strPtr(`{"a":"b c&d"}`),
			want: "http://shard:2020/set?users%2Fann=%7B%22a%22%3A%22b+c%26d%22%7D",
		},
		{
			name: "ok/base_path", base: "https://example.com/db/", op: OpFetch,
			key: "k",
			want: "https://example.com/db/fetch?k",
		},
		{
			name: "ok/delete", base: "http://shard", op: OpDelete,
			key: "a#b",
			want: "http://shard/delete?a%23b",
		},
		{
			name: "ok/fetchall_ignores_key", base: "http://shard", op: OpFetchAll,
			key: "ignored",
			want: "http://shard/fetchall",
		},
		{
			name: "ok/latency", base: "http://shard", op: OpLatency,
			want: "http://shard/latency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			base, err := url.Parse(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, BuildTarget(base, tt.op, tt.key, tt.value))
		})
	}
}

func TestBuildTargetRoundTrip(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("http://shard")
	require.NoError(t, err)

	key := "päth/with?odd+chars%"
	value := "1 + 1 = 2 & more"
	target, err := url.Parse(BuildTarget(base, OpSet, key, &value))
	require.NoError(t, err)

	q, err := url.ParseQuery(target.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, value, q.Get(key))
}
