// Package storage provides the durable persistence port for the CRM.
//
// The original client kept each collection as one JSON array under a fixed
// localStorage key and rewrote the whole document on every mutation. The port
// keeps that model: read-all/write-all per collection, no deltas, no
// transactions spanning collections. Keys and element shapes are preserved
// verbatim for compatibility.
package storage

import (
	"context"

	"github.com/venda-crm/venda/internal/models"
)

// Storage keys, carried over unchanged from the original client.
const (
	KeyLeads     = "pipeline_pro_leads"
	KeyReminders = "pipeline_pro_reminders"
	KeyAuthToken = "crm_auth_token"
	KeyUserData  = "crm_user_data"
)

// Port is the injected persistence boundary. Stores depend on this interface
// so tests can substitute the in-memory double for the sqlite backend.
type Port interface {
	// ReadLeads returns the full lead collection. A missing or unparsable
	// document yields the bundled seed set rather than an error; only an
	// unreadable backend fails.
	ReadLeads(ctx context.Context) ([]models.Lead, error)

	// WriteLeads replaces the full lead collection.
	WriteLeads(ctx context.Context, leads []models.Lead) error

	// ReadReminders returns the full reminder collection. Missing or
	// unparsable documents yield an empty collection.
	ReadReminders(ctx context.Context) ([]models.Reminder, error)

	// WriteReminders replaces the full reminder collection.
	WriteReminders(ctx context.Context, reminders []models.Reminder) error

	// ReadSession returns the stored session marker, or nil when either the
	// token or the user record is absent.
	ReadSession(ctx context.Context) (*models.Session, error)

	// WriteSession stores the session marker.
	WriteSession(ctx context.Context, s *models.Session) error

	// ClearSession removes the session marker.
	ClearSession(ctx context.Context) error
}
