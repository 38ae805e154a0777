package client

import (
	"net/url"
)

// Operation is a remote shard operation. Its value is the path segment
// appended to the shard URL.
type Operation string

// Shard operations.
const (
	OpSet      Operation = "set"
	OpDelete   Operation = "delete"
	OpFetch    Operation = "fetch"
	OpFetchAll Operation = "fetchall"
	OpLatency  Operation = "latency"
)

// BuildTarget returns the request target for op. The key and value are
// query-escaped, so the shard recovers them unchanged by unescaping the raw
// query. value is only used by OpSet.
func BuildTarget(base *url.URL, op Operation, key string, value *string) string {
	u := base.JoinPath(string(op))
	u.Fragment = ""
	u.RawFragment = ""

	switch op {
	case OpSet:
		var v string
		if value != nil {
			v = *value
		}
		u.RawQuery = url.QueryEscape(key) + "=" + url.QueryEscape(v)
	case OpDelete, OpFetch:
		u.RawQuery = url.QueryEscape(key)
	default:
		u.RawQuery = ""
	}

	return u.String()
}
