package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested decision does not exist in the index.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or undecodable input.
	// Fatal for the run that supplied it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredentials indicates required remote-mode credentials
	// are absent. Raised at startup, before any component is built.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInconsistentData indicates the index pointed at a blob batch
	// that does not actually contain the requested record. Surfaced as
	// a non-crashing failure since it means index/blob drift.
	ErrInconsistentData = errors.New("record not found inside storage batch")
)
