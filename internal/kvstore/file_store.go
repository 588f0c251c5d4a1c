package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileStore keeps the whole key/value space in a single JSON document on
// disk, rewritten on every mutation.
type FileStore struct {
	path     string
	compress bool
	items    map[string]string
}

func NewFileStore(path string, compress bool) *FileStore {
	return &FileStore{
		path:     path,
		compress: compress,
	}
}

func (s *FileStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.items = make(map[string]string)
	return s.save()
}

func (s *FileStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'growlog init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.items = make(map[string]string)
	if err := json.Unmarshal(data, &s.items); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *FileStore) SetItem(key, value string) error {
	if s.items == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.compress {
		value = encodeValue(value)
	}
	s.items[key] = value
	return s.save()
}

func (s *FileStore) GetItem(key string) (string, bool, error) {
	if s.items == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.items[key]
	if !ok {
		return "", false, nil
	}
	return decodeValue(value), true, nil
}

func (s *FileStore) RemoveItem(key string) error {
	if s.items == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.items, key)
	return s.save()
}

func (s *FileStore) Clear() error {
	if s.items == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.items = make(map[string]string)
	return s.save()
}

func (s *FileStore) Keys() ([]string, error) {
	if s.items == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Path() string {
	return s.path
}
