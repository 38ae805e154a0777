package store

// Store holds the entries of a development shard.
type Store interface {
	Close() error
	Get(key string) (ok bool, value []byte, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	// List returns the entries whose key starts with prefix, ordered by key.
	// An empty prefix matches every entry.
	List(prefix string) ([]Entry, error)
}

// Entry is a stored key and its raw value.
type Entry struct {
	Key   string
	Value []byte
}
