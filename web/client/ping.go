package client

import (
	"context"
	"time"
)

// Ping returns the shard latency: the client's current time minus the
// timestamp reported by the shard, truncated to milliseconds.
//
// Clock skew between client and shard can make the difference negative. Such
// results are clamped to zero.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	body, err := c.do(ctx, OpLatency, "", nil)
	if err != nil {
		return 0, err
	}
	serverMs, err := interpretLatency(OpLatency, body)
	if err != nil {
		return 0, err
	}

	elapsed := c.now().UnixMilli() - serverMs
	if elapsed < 0 {
		c.logger.Debug("clamping negative shard latency, clocks are skewed",
			"elapsed_ms", elapsed)
		elapsed = 0
	}

	return time.Duration(elapsed) * time.Millisecond, nil
}
