package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the key/value space in a single-table SQLite database.
// Same contract as FileStore, sturdier against partial writes.
type SQLiteStore struct {
	path     string
	compress bool
	db       *sql.DB
}

func NewSQLiteStore(path string, compress bool) *SQLiteStore {
	return &SQLiteStore{
		path:     path,
		compress: compress,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'growlog init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SetItem(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.compress {
		value = encodeValue(value)
	}
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetItem(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return decodeValue(value), true, nil
}

func (s *SQLiteStore) RemoveItem(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Keys() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Path() string {
	return s.path
}
