// Package memory provides in-memory driven port implementations for testing.
package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
// Mutation and enumeration are guarded by a single lock so the store
// can be shared across goroutines.
type ConfigStore struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		entries: make(map[string]domain.Entry),
	}
}

// Get retrieves the entry for a key.
func (s *ConfigStore) Get(key string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// Set inserts a new entry or replaces the existing one in place.
func (s *ConfigStore) Set(key string, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Keys returns all currently-defined key names, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save persists the current configuration (no-op for memory store).
func (s *ConfigStore) Save() error {
	return nil
}

// Load reads configuration from storage (no-op for memory store).
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
