package client

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when a key is empty or contains characters
	// that can't be sent in a request target.
	ErrInvalidKey = errors.New("invalid key provided")
	// ErrInvalidValue is returned when a value is missing or can't be
	// represented on the wire.
	ErrInvalidValue = errors.New("invalid value provided")
	// ErrNotANumber is returned by Math when the stored value is not numeric.
	ErrNotANumber = errors.New("target is not a number")
	// ErrInvalidPrefix is returned by StartsWith when the prefix is empty.
	ErrInvalidPrefix = errors.New("invalid prefix provided")
	// ErrUnsupportedOperator is returned for unknown Math operators.
	ErrUnsupportedOperator = errors.New("unknown operator provided")
	// ErrNotFound is returned when decoding a value that doesn't exist.
	ErrNotFound = errors.New("no value stored for key")
	// ErrShard matches every *ShardError.
	ErrShard = errors.New("the HexoShard URL is invalid or unreachable")
)

// ShardError is returned when the shard can't be reached, or when it replies
// with a failure status or a body that doesn't match the wire protocol.
type ShardError struct {
	Op         Operation
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ShardError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("shard %s request failed: %v", e.Op, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("shard %s request failed with status %d: %s",
			e.Op, e.StatusCode, bytes.TrimSpace(e.Body))
	}
	return fmt.Sprintf("shard %s request failed", e.Op)
}

func (e *ShardError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrShard) hold for any *ShardError.
func (e *ShardError) Is(target error) bool {
	return target == ErrShard
}

func malformedResponse(op Operation, format string, args ...any) *ShardError {
	return &ShardError{Op: op, Err: fmt.Errorf(format, args...)}
}
