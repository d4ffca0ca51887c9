package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// entryRecord is the on-disk form of one entry. The kind tag decides
// which payload field is meaningful.
type entryRecord struct {
	Kind    string   `toml:"kind"`
	String  string   `toml:"string,omitempty"`
	Integer int64    `toml:"integer,omitempty"`
	List    []string `toml:"list,omitempty"`
}

// document is the on-disk form of the whole store.
type document struct {
	Entries map[string]entryRecord `toml:"entries"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using
// TOML. Configuration is stored in a TOML file within the maildeck
// config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	entries  map[string]domain.Entry
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.maildeck/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".maildeck")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		entries:  make(map[string]domain.Entry),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves the entry for a key.
func (s *ConfigStore) Get(key string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Set inserts a new entry or replaces the existing one, and persists
// immediately.
func (s *ConfigStore) Set(key string, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	return s.save()
}

// Delete removes a key and persists immediately. Deleting an absent key
// is a no-op.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.save()
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

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	doc := document{Entries: make(map[string]entryRecord, len(s.entries))}
	for key, entry := range s.entries {
		doc.Entries[key] = encodeEntry(entry)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.entries = make(map[string]domain.Entry)
			return nil
		}
		return err
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}

	entries := make(map[string]domain.Entry, len(doc.Entries))
	for key, rec := range doc.Entries {
		entry, err := decodeEntry(rec)
		if err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		entries[key] = entry
	}
	s.entries = entries
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func encodeEntry(entry domain.Entry) entryRecord {
	rec := entryRecord{Kind: entry.Kind().String()}
	switch entry.Kind() {
	case domain.KindString:
		rec.String, _ = entry.StringValue()
	case domain.KindInteger:
		rec.Integer, _ = entry.IntegerValue()
	case domain.KindList:
		rec.List, _ = entry.ListValue()
	}
	return rec
}

func decodeEntry(rec entryRecord) (domain.Entry, error) {
	switch domain.Kind(rec.Kind) {
	case domain.KindString:
		return domain.StringEntry(rec.String), nil
	case domain.KindInteger:
		return domain.IntegerEntry(rec.Integer), nil
	case domain.KindList:
		return domain.ListEntry(rec.List), nil
	default:
		return domain.Entry{}, fmt.Errorf("%w: kind %q", domain.ErrUnsupportedType, rec.Kind)
	}
}
