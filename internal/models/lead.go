package models

import "time"

// Lead represents a prospective customer tracked through the pipeline.
// JSON tags match the storage layout introduced by the original web client,
// including the capitalized "Id" key, and must stay stable so existing
// databases keep loading.
type Lead struct {
	ID             int       `json:"Id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	EstimatedValue float64   `json:"estimatedValue"`
	Date           string    `json:"date"`
	Column         string    `json:"column"`
	Archived       bool      `json:"archived"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NextLeadID returns the id for a new lead: one past the current maximum.
// Deleted ids are never reused.
func NextLeadID(leads []Lead) int {
	maxID := 0
	for _, l := range leads {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	return maxID + 1
}
