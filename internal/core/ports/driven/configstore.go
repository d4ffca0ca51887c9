package driven

import "github.com/custodia-labs/maildeck/internal/core/domain"

// ConfigStore holds typed configuration entries keyed by name.
// Implementations handle persistence (TOML file, SQLite) or keep
// everything in memory for tests.
//
// Keys are case-sensitive and unique: setting an existing key replaces
// its entry (kind and payload) in place, it never creates a duplicate.
type ConfigStore interface {
	// Get retrieves the entry for a key.
	// Returns the entry and a boolean indicating if the key exists.
	Get(key string) (domain.Entry, bool)

	// Set inserts a new entry or replaces the existing one.
	// Persisting implementations write through immediately.
	Set(key string, entry domain.Entry) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Keys returns all currently-defined key names, sorted, one per
	// distinct key regardless of how many times each was set.
	Keys() []string

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage, replacing in-memory state.
	Load() error

	// Path returns the backing storage path.
	Path() string
}
