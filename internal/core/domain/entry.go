package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Kind identifies the payload type carried by a config Entry.
type Kind string

// Available entry kinds.
const (
	// KindString is a single text value.
	KindString Kind = "string"

	// KindInteger is a signed whole number.
	KindInteger Kind = "integer"

	// KindList is an ordered sequence of text values.
	KindList Kind = "list"
)

// IsValid returns true if the kind is recognised.
func (k Kind) IsValid() bool {
	switch k {
	case KindString, KindInteger, KindList:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k Kind) Description() string {
	switch k {
	case KindString:
		return "String (text value)"
	case KindInteger:
		return "Integer (whole number)"
	case KindList:
		return "List (ordered text values)"
	default:
		return unknownDescription
	}
}

// AllKinds returns all available entry kinds.
func AllKinds() []Kind {
	return []Kind{KindString, KindInteger, KindList}
}

// Entry is one named configuration value: a tagged union over
// {string, integer, list-of-string}. The payload always matches the
// kind tag; construct entries via StringEntry, IntegerEntry, ListEntry
// or CoerceEntry, never directly.
type Entry struct {
	kind Kind
	str  string
	num  int64
	list []string
}

// StringEntry returns an Entry holding a text value.
func StringEntry(v string) Entry {
	return Entry{kind: KindString, str: v}
}

// IntegerEntry returns an Entry holding a whole number.
func IntegerEntry(v int64) Entry {
	return Entry{kind: KindInteger, num: v}
}

// ListEntry returns an Entry holding an ordered sequence of text values.
// The slice is copied so callers cannot mutate the entry afterwards.
func ListEntry(v []string) Entry {
	items := make([]string, len(v))
	copy(items, v)
	return Entry{kind: KindList, list: items}
}

// CoerceEntry converts a runtime value into an Entry. The value's
// concrete form determines the kind tag: text becomes a string entry,
// whole numbers become integer entries, and string sequences become
// list entries. Unsupported forms return ErrUnsupportedType.
func CoerceEntry(v any) (Entry, error) {
	switch val := v.(type) {
	case Entry:
		if !val.kind.IsValid() {
			return Entry{}, fmt.Errorf("%w: entry kind %q", ErrUnsupportedType, val.kind)
		}
		return val, nil
	case string:
		return StringEntry(val), nil
	case int:
		return IntegerEntry(int64(val)), nil
	case int32:
		return IntegerEntry(int64(val)), nil
	case int64:
		return IntegerEntry(val), nil
	case []string:
		return ListEntry(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return Entry{}, fmt.Errorf("%w: list element %T", ErrUnsupportedType, item)
			}
			items = append(items, s)
		}
		return ListEntry(items), nil
	default:
		return Entry{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// Kind returns the entry's kind tag.
func (e Entry) Kind() Kind {
	return e.kind
}

// IsZero returns true for the zero Entry, which holds no value.
func (e Entry) IsZero() bool {
	return !e.kind.IsValid()
}

// StringValue returns the text payload. The boolean is false when the
// entry does not hold a string.
func (e Entry) StringValue() (string, bool) {
	if e.kind != KindString {
		return "", false
	}
	return e.str, true
}

// IntegerValue returns the numeric payload. The boolean is false when
// the entry does not hold an integer.
func (e Entry) IntegerValue() (int64, bool) {
	if e.kind != KindInteger {
		return 0, false
	}
	return e.num, true
}

// ListValue returns a copy of the list payload. The boolean is false
// when the entry does not hold a list.
func (e Entry) ListValue() ([]string, bool) {
	if e.kind != KindList {
		return nil, false
	}
	items := make([]string, len(e.list))
	copy(items, e.list)
	return items, true
}

// Equal reports whether two entries have the same kind and payload.
func (e Entry) Equal(other Entry) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case KindString:
		return e.str == other.str
	case KindInteger:
		return e.num == other.num
	case KindList:
		if len(e.list) != len(other.list) {
			return false
		}
		for i := range e.list {
			if e.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Display returns the payload rendered for human output.
func (e Entry) Display() string {
	switch e.kind {
	case KindString:
		return e.str
	case KindInteger:
		return fmt.Sprintf("%d", e.num)
	case KindList:
		return strings.Join(e.list, ", ")
	default:
		return ""
	}
}
