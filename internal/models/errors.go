package models

import "errors"

// Shared error kinds. Services wrap these so callers can classify failures
// with errors.Is regardless of which store produced them.
var (
	// ErrNotFound indicates an operation referenced a nonexistent id.
	ErrNotFound = errors.New("record not found")

	// ErrValidation indicates rejected input (empty title, negative value, ...).
	ErrValidation = errors.New("validation failed")

	// ErrStorageUnavailable indicates the durable store could not be read or
	// written. Reads fall back to seed data; writes surface this to the UI.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownStage indicates a stage reference that matches no configured
	// pipeline stage.
	ErrUnknownStage = errors.New("unknown pipeline stage")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated indicates no stored session marker.
	ErrNotAuthenticated = errors.New("not signed in")
)
