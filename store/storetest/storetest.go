// Package storetest checks the behavior shared by every store.Store.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/hexo/store"
)

// Run tests st. It must be empty.
func Run(t *testing.T, st store.Store) {
	t.Run("ok/get_missing", func(t *testing.T) {
		ok, val, err := st.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("ok/set_get", func(t *testing.T) {
		require.NoError(t, st.Set("users/ann", []byte(`{"score":3}`)))
		ok, val, err := st.Get("users/ann")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"score":3}`, string(val))
	})

	t.Run("ok/overwrite", func(t *testing.T) {
		require.NoError(t, st.Set("users/bob", []byte("1")))
		require.NoError(t, st.Set("users/bob", []byte("2")))
		ok, val, err := st.Get("users/bob")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2", string(val))
	})

	t.Run("ok/list_prefix", func(t *testing.T) {
		require.NoError(t, st.Set("users/", []byte("dir")))
		require.NoError(t, st.Set("usersx", []byte("x")))
		require.NoError(t, st.Set("teams/a", []byte("a")))

		entries, err := st.List("users/")
		require.NoError(t, err)
		assert.Equal(t, []store.Entry{
			{Key: "users/", Value: []byte("dir")},
			{Key: "users/ann", Value: []byte(`{"score":3}`)},
			{Key: "users/bob", Value: []byte("2")},
		}, entries)
	})

	t.Run("ok/list_all", func(t *testing.T) {
		entries, err := st.List("")
		require.NoError(t, err)
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		assert.Equal(t, []string{"teams/a", "users/", "users/ann", "users/bob", "usersx"}, keys)
	})

	t.Run("ok/list_no_match", func(t *testing.T) {
		entries, err := st.List("nothing")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("ok/delete", func(t *testing.T) {
		require.NoError(t, st.Delete("users/bob"))
		ok, _, err := st.Get("users/bob")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, st.Delete("users/bob"))
	})
}
