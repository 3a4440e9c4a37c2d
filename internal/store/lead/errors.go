package lead

import "errors"

// Lead-related errors
var (
	// Validation errors
	ErrEmptyName     = errors.New("lead name cannot be empty")
	ErrNegativeValue = errors.New("estimated value cannot be negative")
	ErrInvalidLeadID = errors.New("invalid lead ID")

	// Business logic errors
	ErrLeadNotFound = errors.New("lead not found")
)
