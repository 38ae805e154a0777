package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/stretchr/testify/require"

	actx "go.hackfix.me/hexo/app/context"
	"go.hackfix.me/hexo/store/badger"
	"go.hackfix.me/hexo/web/server/api"
)

type testApp struct {
	*App
	stdout, stderr *syncBuffer
	env            *mockEnv
}

func newTestApp(ctx context.Context, options ...Option) *testApp {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &mockEnv{env: map[string]string{}}
	opts := []Option{
		WithContext(ctx),
		WithFDs(&bytes.Buffer{}, stdout, stderr),
		WithFS(memoryfs.New()),
		WithLogger(false),
		WithEnv(env),
		WithVersion("v0.0.0-test"),
	}
	opts = append(opts, options...)

	return &testApp{App: New(opts...), stdout: stdout, stderr: stderr, env: env}
}

// Run resets the standard streams and runs the command.
func (ta *testApp) Run(args ...string) error {
	ta.stdout.Reset()
	ta.stderr.Reset()
	return ta.App.Run(args)
}

// newTestShard starts a shard backed by an in-memory store, and returns its
// base URL.
func newTestShard(t *testing.T) string {
	t.Helper()

	st, err := badger.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.Router(st, slog.Default()))
	t.Cleanup(srv.Close)

	return srv.URL
}

type mockEnv struct {
	mx  sync.RWMutex
	env map[string]string
}

var _ actx.Environment = &mockEnv{}

func (me *mockEnv) Get(key string) string {
	me.mx.RLock()
	defer me.mx.RUnlock()
	return me.env[key]
}

func (me *mockEnv) Set(key, val string) error {
	me.mx.Lock()
	defer me.mx.Unlock()
	me.env[key] = val
	return nil
}

// syncBuffer is a bytes.Buffer safe for concurrent use, so that tests can
// read the output of a command running in another goroutine.
type syncBuffer struct {
	mx  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.buf.Reset()
}

// newTestContext returns a context that times out after timeout, and an
// assertion handling function that cancels the context prematurely and fails
// the test if the assertion fails. This is done to avoid waiting for the
// context timeout to be reached.
func newTestContext(t *testing.T, timeout time.Duration) (
	ctx context.Context, cancelCtx func(), assertHandler func(bool),
) {
	ctx, cancelCtx = context.WithTimeout(context.Background(), timeout)
	assertHandler = func(success bool) {
		if !success {
			cancelCtx()
			t.FailNow()
		}
	}

	return
}
