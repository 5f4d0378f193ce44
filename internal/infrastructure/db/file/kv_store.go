// Package file persists key-value pairs in a single JSON document on disk,
// the local equivalent of browser storage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// KVStore implements ports.KeyValueStore. Every mutation rewrites the whole
// document through a synced temp file and an atomic rename.
type KVStore struct {
	mu       sync.Mutex
	path     string
	readFile func(name string) ([]byte, error)
}

func NewKVStore(path string) *KVStore {
	return &KVStore{path: path, readFile: os.ReadFile}
}

// Get treats a corrupt document as empty, so the key reads as absent.
// Read failures are returned as they are.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadForWrite()
	if err != nil {
		return err
	}
	data[key] = string(value)
	return s.save(data)
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		data = map[string]string{}
	case err != nil:
		return err
	default:
		if _, ok := data[key]; !ok {
			return nil
		}
	}
	delete(data, key)
	return s.save(data)
}

// Ping verifies the parent directory is writable.
func (s *KVStore) Ping(context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("kv file ping: %w", err)
	}
	f, err := os.CreateTemp(dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("kv file ping: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// loadForWrite is load for mutations: a corrupt document is replaced, any
// other failure aborts the write so the other keys survive.
func (s *KVStore) loadForWrite() (map[string]string, error) {
	data, err := s.load()
	if errors.Is(err, domain.ErrKeyNotFound) {
		return map[string]string{}, nil
	}
	return data, err
}

func (s *KVStore) load() (map[string]string, error) {
	raw, err := s.readFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("kv file read: %w", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("kv file decode: %w", domain.ErrKeyNotFound)
	}
	return data, nil
}

func (s *KVStore) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("kv file encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("kv file mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("kv file temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("kv file write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("kv file sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv file close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("kv file rename: %w", err)
	}
	return nil
}
