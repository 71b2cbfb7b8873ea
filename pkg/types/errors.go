package types

import "errors"

// Engine errors. Every operation either succeeds or returns one of these
// (possibly wrapped with context); no partial mutation is ever visible to
// the caller.
var (
	// ErrDefinitionNotFound is returned when an identifier matches no known
	// tagged property id, no known short name, and no readable definition
	// file.
	ErrDefinitionNotFound = errors.New("property definition not found")

	// ErrInvalidDefinition is returned when a property definition violates
	// the definition format (bad property id, bad key name, missing or
	// malformed standard pairs).
	ErrInvalidDefinition = errors.New("invalid property definition")

	// ErrDuplicateInstanceID is returned by create when the instance id is
	// already present in the collection.
	ErrDuplicateInstanceID = errors.New("duplicate instance id")

	// ErrInstanceNotFound is returned when an instance id matches no
	// instance in the collection.
	ErrInstanceNotFound = errors.New("instance not found")

	// ErrInvalidInstanceID is returned when an instance id is not a
	// positive integer.
	ErrInvalidInstanceID = errors.New("instance id must be a positive integer")

	// ErrUnknownKey is returned when a named key or metadata field is not
	// defined where it is required to exist.
	ErrUnknownKey = errors.New("unknown key")

	// ErrTypeMismatch is returned when a value disagrees with the key's
	// declared type or scalar/array shape class.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrExtentMismatch is returned when an index or claimed extent
	// disagrees with the key's declared or established array shape.
	ErrExtentMismatch = errors.New("extent mismatch")

	// ErrInvalidEnumValue is returned when a source value is outside the
	// key's declared enumeration.
	ErrInvalidEnumValue = errors.New("value not in enumeration")

	// ErrMissingRequiredKey is returned when a key marked required in the
	// definition is absent or not fully populated.
	ErrMissingRequiredKey = errors.New("missing required key")

	// ErrBadToken is returned when a modify/remove token stream is
	// malformed.
	ErrBadToken = errors.New("malformed token stream")

	// ErrEmptyCollection is returned when an operation needs at least one
	// instance and the collection has none.
	ErrEmptyCollection = errors.New("collection holds no property instances")
)
