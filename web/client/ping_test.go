package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	serverTime := time.UnixMilli(1_700_000_000_000)
	shard := newTestShardHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ping":"1700000000000"}`))
	}))

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{name: "ok/elapsed", now: serverTime.Add(42 * time.Millisecond), want: 42 * time.Millisecond},
		{name: "ok/sub_millisecond_truncated", now: serverTime.Add(1500 * time.Microsecond), want: time.Millisecond},
		{name: "ok/same_instant", now: serverTime, want: 0},
		{name: "ok/skew_clamped", now: serverTime.Add(-time.Second), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, shard, WithClock(func() time.Time { return tt.now }))
			got, err := c.Ping(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientPingLive(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newTestShard(t))
	got, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, got >= 0 && got < 5*time.Second, "unexpected latency %s", got)
}
