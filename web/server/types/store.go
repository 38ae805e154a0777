package types

import "encoding/json"

// OperationResponse confirms a set or delete.
type OperationResponse struct {
	*Response
	Operation string `json:"operation"`
}

// FetchResponse carries a stored value, or null if the key has none.
type FetchResponse struct {
	*Response
	Data json.RawMessage `json:"data"`
}

// Entry is an element of the fetchall response.
type Entry struct {
	Key  string          `json:"key"`
	ID   string          `json:"ID"`
	Data json.RawMessage `json:"data"`
}

// LatencyResponse carries the shard time in Unix milliseconds.
type LatencyResponse struct {
	*Response
	Ping string `json:"ping"`
}
