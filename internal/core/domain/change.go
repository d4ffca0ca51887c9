package domain

// ChangeType identifies what happened to a config key.
type ChangeType string

// Available change types.
const (
	// ChangeSet indicates a key was inserted or its entry replaced.
	ChangeSet ChangeType = "set"

	// ChangeDeleted indicates a key was removed.
	ChangeDeleted ChangeType = "deleted"
)

// String returns the string representation.
func (c ChangeType) String() string {
	return string(c)
}

// ChangeEvent describes one mutation of the config store, delivered to
// registered observers when the mutation was made with notification
// enabled.
type ChangeEvent struct {
	// ID uniquely identifies this event.
	ID string

	// Type is what happened to the key.
	Type ChangeType

	// Key is the affected config key.
	Key string

	// Entry is the value after the change. Zero for deletions.
	Entry Entry
}
