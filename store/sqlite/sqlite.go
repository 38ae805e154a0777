package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "github.com/glebarez/go-sqlite"

	"go.hackfix.me/hexo/store"
)

const schema = `CREATE TABLE IF NOT EXISTS entries (
	key   TEXT PRIMARY KEY NOT NULL,
	value BLOB NOT NULL
)`

// Store is a Store backed by a SQLite database.
type Store struct {
	*sql.DB
	ctx context.Context
}

var _ store.Store = &Store{}

// Open opens the SQLite database at path, creating the schema if needed.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// An in-memory database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{DB: db, ctx: ctx}, nil
}

func (s *Store) Get(key string) (bool, []byte, error) {
	var value []byte
	err := s.QueryRowContext(s.ctx,
		`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, err
	}

	return true, value, nil
}

func (s *Store) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.ExecContext(s.ctx,
		`INSERT INTO entries (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) Delete(key string) error {
	_, err := s.ExecContext(s.ctx, `DELETE FROM entries WHERE key = ?`, key)
	return err
}

func (s *Store) List(prefix string) ([]store.Entry, error) {
	rows, err := s.QueryContext(s.ctx,
		`SELECT key, value FROM entries WHERE key >= ? ORDER BY key`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []store.Entry{}
	for rows.Next() {
		var e store.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		// Keys sharing the prefix are contiguous in key order.
		if !strings.HasPrefix(e.Key, prefix) {
			break
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
