package storage

import (
	"context"
	"sync"

	"github.com/venda-crm/venda/internal/models"
)

// Memory is an in-memory Port for tests. Zero value is usable: reads start
// from the seed lead set and an empty reminder collection, matching the
// sqlite backend's behavior for a fresh database. Like the sql.DB-backed
// port, it tolerates concurrent calls.
//
// ReadErr and WriteErr, when set, are returned by every read or write, which
// lets tests exercise the StorageUnavailable paths.
type Memory struct {
	Leads     []models.Lead
	Reminders []models.Reminder
	Session   *models.Session

	mu           sync.Mutex
	leadsWritten bool

	ReadErr  error
	WriteErr error
}

var _ Port = (*Memory)(nil)

func (m *Memory) ReadLeads(ctx context.Context) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if m.Leads == nil && !m.leadsWritten {
		return SeedLeads(), nil
	}
	out := make([]models.Lead, len(m.Leads))
	copy(out, m.Leads)
	return out, nil
}

func (m *Memory) WriteLeads(ctx context.Context, leads []models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Leads = make([]models.Lead, len(leads))
	copy(m.Leads, leads)
	m.leadsWritten = true
	return nil
}

func (m *Memory) ReadReminders(ctx context.Context) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]models.Reminder, len(m.Reminders))
	copy(out, m.Reminders)
	return out, nil
}

func (m *Memory) WriteReminders(ctx context.Context, reminders []models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Reminders = make([]models.Reminder, len(reminders))
	copy(m.Reminders, reminders)
	return nil
}

func (m *Memory) ReadSession(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if m.Session == nil {
		return nil, nil
	}
	sess := *m.Session
	return &sess, nil
}

func (m *Memory) WriteSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	sess := *s
	m.Session = &sess
	return nil
}

func (m *Memory) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Session = nil
	return nil
}
