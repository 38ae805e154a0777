package badger

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"go.hackfix.me/hexo/store"
)

// Badger is a Store backed by a Badger database.
type Badger struct {
	db *badger.DB
}

var _ store.Store = &Badger{}

// Open opens the database at path. An empty path opens an in-memory
// database, whose contents are lost on Close.
func Open(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{db: db}, nil
}

func (s *Badger) Close() error {
	return s.db.Close()
}

func (s *Badger) Get(key string) (bool, []byte, error) {
	txn := s.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return false, nil, err
	}

	return true, val, nil
}

func (s *Badger) Set(key string, value []byte) error {
	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	if err := txn.Set([]byte(key), value); err != nil {
		return err
	}

	return txn.Commit()
}

func (s *Badger) Delete(key string) error {
	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	if err := txn.Delete([]byte(key)); err != nil {
		return err
	}

	return txn.Commit()
}

func (s *Badger) List(prefix string) ([]store.Entry, error) {
	txn := s.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	entries := []store.Entry{}
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, store.Entry{Key: string(item.KeyCopy(nil)), Value: val})
	}

	return entries, nil
}
