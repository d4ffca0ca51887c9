package driving

import "github.com/custodia-labs/maildeck/internal/core/domain"

// Observer receives change events for mutations made with notification
// enabled.
type Observer func(domain.ChangeEvent)

// ConfigService provides access to the application's configuration
// entries. A freshly initialised service always contains the built-in
// baseline keys.
type ConfigService interface {
	// Get retrieves the entry for a key.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(key string) (domain.Entry, error)

	// GetString retrieves a string value.
	// Returns empty string if the key is absent or not a string.
	GetString(key string) string

	// GetInteger retrieves an integer value.
	// Returns 0 if the key is absent or not an integer.
	GetInteger(key string) int64

	// GetList retrieves a list value.
	// Returns nil if the key is absent or not a list.
	GetList(key string) []string

	// Set coerces value to a typed entry and stores it under key,
	// replacing any existing entry. When notify is true, registered
	// observers are informed of the change.
	Set(key string, value any, notify bool) error

	// Delete removes a key. When notify is true, registered observers
	// are informed. Deleting an absent key returns domain.ErrNotFound.
	Delete(key string, notify bool) error

	// Keys returns all currently-defined key names, sorted.
	Keys() []string

	// Subscribe registers an observer for change events. It returns the
	// observer's id and a cancel function that unregisters it.
	Subscribe(fn Observer) (string, func())
}
