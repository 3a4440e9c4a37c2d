package storage

import (
	"context"
	"time"

	"github.com/venda-crm/venda/internal/models"
)

// Profile holds the artificial per-operation delays the original client
// applied to every simulated API call. Operations are not cancellable: a
// started write completes even if the caller has moved on.
type Profile struct {
	LeadRead      time.Duration
	LeadWrite     time.Duration
	ReminderRead  time.Duration
	ReminderWrite time.Duration
	SessionRead   time.Duration
	SessionWrite  time.Duration
}

// DefaultProfile mirrors the original client's setTimeout values.
func DefaultProfile() Profile {
	return Profile{
		LeadRead:      300 * time.Millisecond,
		LeadWrite:     400 * time.Millisecond,
		ReminderRead:  200 * time.Millisecond,
		ReminderWrite: 300 * time.Millisecond,
		SessionRead:   150 * time.Millisecond,
		SessionWrite:  time.Second,
	}
}

// WithLatency wraps a Port so every operation sleeps for its configured
// delay first. A zero Profile makes the wrapper a pass-through.
func WithLatency(port Port, profile Profile) Port {
	return &latencyPort{port: port, profile: profile}
}

type latencyPort struct {
	port    Port
	profile Profile
}

var _ Port = (*latencyPort)(nil)

// pause sleeps for d, ignoring context cancellation: the simulated request
// is in flight and will land regardless, same as the original client.
func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (p *latencyPort) ReadLeads(ctx context.Context) ([]models.Lead, error) {
	pause(p.profile.LeadRead)
	return p.port.ReadLeads(ctx)
}

func (p *latencyPort) WriteLeads(ctx context.Context, leads []models.Lead) error {
	pause(p.profile.LeadWrite)
	return p.port.WriteLeads(ctx, leads)
}

func (p *latencyPort) ReadReminders(ctx context.Context) ([]models.Reminder, error) {
	pause(p.profile.ReminderRead)
	return p.port.ReadReminders(ctx)
}

func (p *latencyPort) WriteReminders(ctx context.Context, reminders []models.Reminder) error {
	pause(p.profile.ReminderWrite)
	return p.port.WriteReminders(ctx, reminders)
}

func (p *latencyPort) ReadSession(ctx context.Context) (*models.Session, error) {
	pause(p.profile.SessionRead)
	return p.port.ReadSession(ctx)
}

func (p *latencyPort) WriteSession(ctx context.Context, s *models.Session) error {
	pause(p.profile.SessionWrite)
	return p.port.WriteSession(ctx, s)
}

func (p *latencyPort) ClearSession(ctx context.Context) error {
	pause(p.profile.SessionWrite)
	return p.port.ClearSession(ctx)
}
