package services

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/ports/driven"
	"github.com/custodia-labs/maildeck/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Version is recorded under global.version at initialisation.
// Overridden at build time via -ldflags.
var Version = "0.1.0"

// Built-in config keys, present from the moment a service is constructed.
const (
	// KeyVersion is the maildeck version.
	KeyVersion = "global.version"

	// KeyRuntime is the Go runtime version maildeck was built with.
	KeyRuntime = "runtime.version"

	// KeyEditor is the external editor for message composition.
	KeyEditor = "global.editor"

	// KeyMode is the UI mode the client starts in.
	KeyMode = "global.mode"

	// KeyIndexLimit restricts how many messages the index shows.
	KeyIndexLimit = "index.limit"

	// KeyIndexSort orders the message index.
	KeyIndexSort = "index.sort"

	// KeyMaildirPrefix is the root of the user's maildir hierarchy.
	KeyMaildirPrefix = "maildir.prefix"
)

// ConfigService is the authoritative holder of named configuration
// values. It seeds the built-in baseline keys at construction and
// notifies subscribed observers of mutations made with notification
// enabled.
type ConfigService struct {
	store driven.ConfigStore

	obsMu     sync.RWMutex
	observers map[string]driving.Observer
}

// NewConfigService creates a config service over the given store and
// seeds any missing baseline keys. Callers share one service per
// process by constructing it once and injecting it.
func NewConfigService(store driven.ConfigStore) (*ConfigService, error) {
	s := &ConfigService{
		store:     store,
		observers: make(map[string]driving.Observer),
	}
	if err := s.seedBaseline(); err != nil {
		return nil, fmt.Errorf("seeding baseline keys: %w", err)
	}
	return s, nil
}

// Get retrieves the entry for a key.
func (s *ConfigService) Get(key string) (domain.Entry, error) {
	entry, ok := s.store.Get(key)
	if !ok {
		return domain.Entry{}, fmt.Errorf("config key %q: %w", key, domain.ErrNotFound)
	}
	return entry, nil
}

// GetString retrieves a string value.
// Returns empty string if the key is absent or not a string.
func (s *ConfigService) GetString(key string) string {
	entry, ok := s.store.Get(key)
	if !ok {
		return ""
	}
	v, _ := entry.StringValue()
	return v
}

// GetInteger retrieves an integer value.
// Returns 0 if the key is absent or not an integer.
func (s *ConfigService) GetInteger(key string) int64 {
	entry, ok := s.store.Get(key)
	if !ok {
		return 0
	}
	v, _ := entry.IntegerValue()
	return v
}

// GetList retrieves a list value.
// Returns nil if the key is absent or not a list.
func (s *ConfigService) GetList(key string) []string {
	entry, ok := s.store.Get(key)
	if !ok {
		return nil
	}
	v, _ := entry.ListValue()
	return v
}

// Set coerces value to a typed entry and stores it under key. An
// existing entry is replaced in place: its kind tag flips to match the
// new value and the distinct-key count is unchanged. When notify is
// true, registered observers are informed.
func (s *ConfigService) Set(key string, value any, notify bool) error {
	if key == "" {
		return fmt.Errorf("empty config key: %w", domain.ErrInvalidInput)
	}

	entry, err := domain.CoerceEntry(value)
	if err != nil {
		return fmt.Errorf("config key %q: %w", key, err)
	}

	if err := s.store.Set(key, entry); err != nil {
		return fmt.Errorf("storing config key %q: %w", key, err)
	}

	if notify {
		s.notify(domain.ChangeEvent{
			ID:    uuid.New().String(),
			Type:  domain.ChangeSet,
			Key:   key,
			Entry: entry,
		})
	}
	return nil
}

// Delete removes a key. When notify is true, registered observers are
// informed.
func (s *ConfigService) Delete(key string, notify bool) error {
	if _, ok := s.store.Get(key); !ok {
		return fmt.Errorf("config key %q: %w", key, domain.ErrNotFound)
	}

	if err := s.store.Delete(key); err != nil {
		return fmt.Errorf("deleting config key %q: %w", key, err)
	}

	if notify {
		s.notify(domain.ChangeEvent{
			ID:   uuid.New().String(),
			Type: domain.ChangeDeleted,
			Key:  key,
		})
	}
	return nil
}

// Keys returns all currently-defined key names, sorted. The result has
// one element per distinct key regardless of how many times each was
// set.
func (s *ConfigService) Keys() []string {
	return s.store.Keys()
}

// Subscribe registers an observer for change events. It returns the
// observer's id and a cancel function that unregisters it.
func (s *ConfigService) Subscribe(fn driving.Observer) (string, func()) {
	id := uuid.New().String()

	s.obsMu.Lock()
	s.observers[id] = fn
	s.obsMu.Unlock()

	cancel := func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
	return id, cancel
}

// notify delivers an event to all registered observers synchronously.
func (s *ConfigService) notify(event domain.ChangeEvent) {
	s.obsMu.RLock()
	observers := make([]driving.Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}

// seedBaseline inserts any baseline key the store does not already
// have. A fresh store ends up with exactly the built-in key set; a
// store loaded from disk keeps its existing values.
func (s *ConfigService) seedBaseline() error {
	for key, entry := range baselineEntries() {
		if _, ok := s.store.Get(key); ok {
			continue
		}
		if err := s.store.Set(key, entry); err != nil {
			return fmt.Errorf("seeding %q: %w", key, err)
		}
	}
	return nil
}

// baselineEntries returns the built-in key set.
func baselineEntries() map[string]domain.Entry {
	return map[string]domain.Entry{
		KeyVersion:       domain.StringEntry(Version),
		KeyRuntime:       domain.StringEntry(runtime.Version()),
		KeyEditor:        domain.StringEntry(defaultEditor()),
		KeyMode:          domain.StringEntry("index"),
		KeyIndexLimit:    domain.StringEntry("all"),
		KeyIndexSort:     domain.StringEntry("date"),
		KeyMaildirPrefix: domain.StringEntry(defaultMaildir()),
	}
}

func defaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

func defaultMaildir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Maildir"
	}
	return filepath.Join(home, "Maildir")
}
