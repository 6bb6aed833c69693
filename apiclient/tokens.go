// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Persisted storage keys. Each is independently settable and clearable.
const (
	KeyAccessToken  = "chautari_token"
	KeyRefreshToken = "chautari_refresh_token"
	KeyUser         = "chautari_user"
)

// TokenStore is the persistence capability the client needs for session
// state: written on login/refresh, cleared on logout, read at client
// construction. Setting an empty value clears the key.
type TokenStore interface {
	Get(key string) string
	Set(key, value string)
	Clear(key string)
}

// MemoryTokenStore keeps session state in memory only. Suitable for tests
// and for processes that don't want sessions to outlive them.
type MemoryTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{values: make(map[string]string)}
}

func (s *MemoryTokenStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *MemoryTokenStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

func (s *MemoryTokenStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// FileTokenStore persists session state to a JSON file, the durable local
// storage analogue. Every mutation writes through immediately.
type FileTokenStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// NewFileTokenStore opens (or initializes) the store at path. A missing
// file is an empty store, not an error.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	s := &FileTokenStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token store: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse token store: %w", err)
	}
	return s, nil
}

func (s *FileTokenStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *FileTokenStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
	} else {
		s.values[key] = value
	}
	s.flush()
}

func (s *FileTokenStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.flush()
}

func (s *FileTokenStore) flush() {
	data, err := json.Marshal(s.values)
	if err != nil {
		return
	}
	// Tokens are credentials: owner-only permissions.
	_ = os.WriteFile(s.path, data, 0o600)
}
