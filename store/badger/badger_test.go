package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/hexo/store/storetest"
)

func TestBadgerMemory(t *testing.T) {
	t.Parallel()

	st, err := Open("")
	require.NoError(t, err)
	defer st.Close()

	storetest.Run(t, st)
}

func TestBadgerPersistence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.Set("count", []byte("42")))
	require.NoError(t, st.Close())

	st, err = Open(dir)
	require.NoError(t, err)
	defer st.Close()

	ok, val, err := st.Get("count")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", string(val))
}
