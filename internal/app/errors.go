package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNotFound marks an operation on a student id with no record.
	// Awarding without a prior IdentifyOrCreate is a protocol violation.
	ErrNotFound = errors.New("student not found")

	// ErrInvalidAward rejects non-positive award amounts; scores never decrease.
	ErrInvalidAward = errors.New("award amount must be positive")

	// ErrMissingLabel rejects a confirm submission without the stage-one label.
	ErrMissingLabel = errors.New("confirm stage requires the identified label")

	// ErrMissingToken rejects a confirm submission without an award token.
	ErrMissingToken = errors.New("confirm stage requires an award token")
)
