package models

import "time"

// Reminder type constants
const (
	ReminderTypeCall    = "call"
	ReminderTypeEmail   = "email"
	ReminderTypeMeeting = "meeting"
	ReminderTypeTask    = "task"
)

// Priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ReminderTypes lists the valid follow-up types in display order.
var ReminderTypes = []string{
	ReminderTypeCall,
	ReminderTypeEmail,
	ReminderTypeMeeting,
	ReminderTypeTask,
}

// Priorities lists the valid priorities in display order.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Reminder is a scheduled follow-up, optionally tied to a lead. LeadID is a
// weak reference: a reminder may outlive its lead. JSON tags match the
// original storage layout (see Lead).
type Reminder struct {
	ID               int        `json:"Id"`
	LeadID           int        `json:"leadId"`
	LeadName         string     `json:"leadName"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Notes            string     `json:"notes"`
	ReminderDateTime time.Time  `json:"reminderDateTime"`
	Priority         string     `json:"priority"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NextReminderID returns the id for a new reminder: one past the current
// maximum, never reusing deleted ids.
func NextReminderID(reminders []Reminder) int {
	maxID := 0
	for _, r := range reminders {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// ValidReminderType reports whether t is one of the enumerated types.
func ValidReminderType(t string) bool {
	for _, v := range ReminderTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}
