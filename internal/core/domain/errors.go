package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested config key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input,
	// such as an empty config key.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a value whose runtime form does not
	// map onto any entry kind.
	ErrUnsupportedType = errors.New("unsupported type")
)
