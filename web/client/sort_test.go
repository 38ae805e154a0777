package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(key, raw string) Entry {
	return Entry{Key: key, Value: NewValue([]byte(raw))}
}

func keysOf(entries []Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestFilterSort(t *testing.T) {
	t.Parallel()

	snapshot := []Entry{
		entry("apple", `{"score":3}`),
		entry("banana", `{"score":9}`),
		entry("avocado", `{"score":7}`),
		entry("apricot", `{"name":"no score"}`),
		entry("almond", `{"score":"high"}`),
	}

	tests := []struct {
		name   string
		prefix string
		opts   *SortOptions
		want   []string
	}{
		{
			name: "ok/no_sort_keeps_order", prefix: "a",
			want: []string{"apple", "avocado", "apricot", "almond"},
		},
		{
			name: "ok/score_asc", prefix: "a",
			opts: &SortOptions{Sort: ".data.score"},
			want: []string{"apple", "avocado", "almond", "apricot"},
		},
		{
			name: "ok/score_desc", prefix: "a",
			opts: &SortOptions{Sort: "data.score", Descending: true},
			want: []string{"almond", "avocado", "apple", "apricot"},
		},
		{
			name: "ok/limit", prefix: "a",
			opts: &SortOptions{Sort: ".data.score", Limit: 2},
			want: []string{"apple", "avocado"},
		},
		{
			name: "ok/by_key_desc", prefix: "a",
			opts: &SortOptions{Sort: ".key", Descending: true},
			want: []string{"avocado", "apricot", "apple", "almond"},
		},
		{
			name: "ok/single_match", prefix: "ban",
			want: []string{"banana"},
		},
		{
			name: "ok/no_match", prefix: "cherry",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FilterSort(tt.prefix, snapshot, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keysOf(got))
		})
	}

	t.Run("err/empty_prefix", func(t *testing.T) {
		t.Parallel()
		_, err := FilterSort("", snapshot, nil)
		assert.ErrorIs(t, err, ErrInvalidPrefix)
	})
}

func TestFilterSortStableTies(t *testing.T) {
	t.Parallel()

	snapshot := []Entry{
		entry("a1", `{"s":1}`),
		entry("a2", `{"s":1}`),
		entry("a3", `{"s":0}`),
		entry("a4", `{"s":1}`),
	}

	got, err := FilterSort("a", snapshot, &SortOptions{Sort: ".data.s"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a3", "a1", "a2", "a4"}, keysOf(got))

	got, err = FilterSort("a", snapshot, &SortOptions{Sort: ".data.s", Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a4", "a3"}, keysOf(got))

	got, err = FilterSort("a", snapshot, &SortOptions{Sort: ".data.s", Descending: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, keysOf(got))

	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, keysOf(snapshot))
}

func TestSortEntriesMixedTypes(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		entry("obj", `{"a":1}`),
		entry("bool", `true`),
		entry("str", `"b"`),
		entry("null", `null`),
		entry("num", `10`),
		entry("num2", `2`),
		entry("arr", `[5, 1]`),
	}

	got := SortEntries(entries, &SortOptions{Sort: ".data"})
	assert.Equal(t, []string{"num2", "num", "str", "bool", "arr", "obj", "null"}, keysOf(got))

	got = SortEntries(entries, &SortOptions{Sort: ".data.1"})
	assert.Equal(t, "arr", got[0].Key)

	// The input is left untouched.
	assert.Equal(t, "obj", entries[0].Key)
}

func TestClientStartsWith(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newTestClient(t, newTestShard(t))

	for key, score := range map[string]int{"apple": 3, "avocado": 7, "banana": 9} {
		_, err := c.Set(ctx, key, map[string]int{"score": score})
		require.NoError(t, err)
	}

	got, err := c.StartsWith(ctx, "a", &SortOptions{Sort: ".data.score", Descending: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"avocado", "apple"}, keysOf(got))

	var doc struct{ Score int }
	require.NoError(t, got[0].Value.Decode(&doc))
	assert.Equal(t, 7, doc.Score)

	got, err = c.StartsWith(ctx, "zzz", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
