package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/hexo/store/storetest"
)

func TestSQLiteMemory(t *testing.T) {
	t.Parallel()

	st, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	storetest.Run(t, st)
}

func TestSQLitePersistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shard.db")

	st, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, st.Set("count", []byte("42")))
	require.NoError(t, st.Close())

	st, err = Open(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	ok, val, err := st.Get("count")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", string(val))
}
