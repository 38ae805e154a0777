package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/hexo/store/badger"
)

type lockedBuffer struct {
	mx  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.String()
}

func TestServer(t *testing.T) {
	t.Parallel()

	st, err := badger.Open("")
	require.NoError(t, err)
	defer st.Close()

	logs := &lockedBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srvCtx, stop := context.WithCancel(ctx)
	defer stop()

	srv := New(st, "127.0.0.1:0", logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx) }()

	var base string
	require.Eventually(t, func() bool {
		if !strings.Contains(logs.String(), "started shard server") {
			return false
		}
		base = "http://" + srv.Addr
		return true
	}, 5*time.Second, 10*time.Millisecond)

	get := func(path string) (int, string) {
		resp, err := http.Get(base + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	t.Run("ok/heartbeat", func(t *testing.T) {
		code, _ := get("/ping")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("ok/set_fetch", func(t *testing.T) {
		code, _ := get("/set?k=v")
		assert.Equal(t, http.StatusOK, code)
		code, body := get("/fetch?k")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `"data":"v"`)
	})

	t.Run("ok/request_log", func(t *testing.T) {
		get("/fetch")
		assert.Contains(t, logs.String(), `msg="GET /fetch"`)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "response_code=400")
	})

	t.Run("err/unknown_route", func(t *testing.T) {
		code, _ := get("/nope")
		assert.Equal(t, http.StatusNotFound, code)
	})

	stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for the server to stop")
	}
}
