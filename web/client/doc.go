// Package client implements a HexoDB shard client.
//
// A shard is a key-value store reachable over HTTP at a base URL. Every
// operation is a GET request to a path under that URL:
//
//	{base}/set?{key}={value}  -> {"operation": ...}
//	{base}/delete?{key}       -> {"operation": ...}
//	{base}/fetch?{key}        -> {"data": ...}
//	{base}/fetchall           -> [{"key": ..., "data": ...}, ...]
//	{base}/latency            -> {"ping": "<unix ms>"}
//
// Keys and values are validated before any request is sent. Math is built
// from a fetch and a set, and StartsWith filters and sorts a full snapshot on
// the client side.
package client
