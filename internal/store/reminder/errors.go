package reminder

import "errors"

// Reminder-related errors
var (
	// Validation errors
	ErrEmptyTitle        = errors.New("reminder title cannot be empty")
	ErrInvalidType       = errors.New("invalid reminder type")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidReminderID = errors.New("invalid reminder ID")
	ErrDateTimeInPast    = errors.New("reminder date/time must be in the future")
	ErrMissingDateTime   = errors.New("reminder date/time is required")

	// Business logic errors
	ErrReminderNotFound = errors.New("reminder not found")
	ErrAlreadyCompleted = errors.New("reminder is already completed")
)
