// Package reminder implements the follow-up reminder store. Reminders are
// keyed to leads by a weak reference: deleting a lead leaves its reminders
// behind, and that is tolerated throughout.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/storage"
)

// upcomingWindow is how far ahead Upcoming looks.
const upcomingWindow = 7 * 24 * time.Hour

// Service defines all reminder-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]models.Reminder, error)
	ListByLead(ctx context.Context, leadID int) ([]models.Reminder, error)
	GetByID(ctx context.Context, id int) (*models.Reminder, error)
	Upcoming(ctx context.Context) ([]models.Reminder, error)
	Overdue(ctx context.Context) ([]models.Reminder, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Reminder, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Reminder, error)
	MarkCompleted(ctx context.Context, id int) (*models.Reminder, error)
	Delete(ctx context.Context, id int) error
}

// CreateRequest encapsulates all data needed to create a reminder
type CreateRequest struct {
	LeadID   int
	LeadName string
	Type     string
	Title    string
	Notes    string
	When     time.Time
	Priority string
}

// UpdateRequest encapsulates a partial reminder update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	ID       int
	Type     *string
	Title    *string
	Notes    *string
	When     *time.Time
	Priority *string
}

// service implements Service interface
type service struct {
	port storage.Port
	bus  events.Publisher
	now  func() time.Time
}

// NewService creates a new reminder service
func NewService(port storage.Port, bus events.Publisher) Service {
	return &service{
		port: port,
		bus:  bus,
		now:  time.Now,
	}
}

// List returns all reminders in storage order.
func (s *service) List(ctx context.Context) ([]models.Reminder, error) {
	return s.port.ReadReminders(ctx)
}

// ListByLead returns the reminders referencing the given lead id. The lead
// itself is never consulted; reminders for deleted leads still show up.
func (s *service) ListByLead(ctx context.Context, leadID int) ([]models.Reminder, error) {
	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}
	matched := reminders[:0:0]
	for _, r := range reminders {
		if r.LeadID == leadID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// GetByID returns the reminder with the given id.
func (s *service) GetByID(ctx context.Context, id int) (*models.Reminder, error) {
	if id <= 0 {
		return nil, ErrInvalidReminderID
	}
	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			r := reminders[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: reminder %d: %w", models.ErrNotFound, id, ErrReminderNotFound)
}

// Upcoming returns incomplete reminders due within the next seven days.
func (s *service) Upcoming(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	horizon := now.Add(upcomingWindow)
	matched := reminders[:0:0]
	for _, r := range reminders {
		if r.Completed {
			continue
		}
		if !r.ReminderDateTime.Before(now) && !r.ReminderDateTime.After(horizon) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Overdue returns incomplete reminders whose due time has passed.
func (s *service) Overdue(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	matched := reminders[:0:0]
	for _, r := range reminders {
		if !r.Completed && r.ReminderDateTime.Before(now) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Create validates the request, assigns a fresh id and timestamps, and
// persists the collection. LeadID is stored as given; no existence check
// against the lead store.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Reminder, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	newReminder := models.Reminder{
		ID:               models.NextReminderID(reminders),
		LeadID:           req.LeadID,
		LeadName:         req.LeadName,
		Type:             req.Type,
		Title:            req.Title,
		Notes:            req.Notes,
		ReminderDateTime: req.When,
		Priority:         req.Priority,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	reminders = append(reminders, newReminder)
	if err := s.port.WriteReminders(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.bus.Publish(events.RemindersChanged, newReminder.ID)
	return &newReminder, nil
}

// Update merges the non-nil request fields and refreshes the update
// timestamp.
func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Reminder, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidReminderID
	}
	if err := s.validateUpdate(req); err != nil {
		return nil, err
	}

	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(reminders, req.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: reminder %d: %w", models.ErrNotFound, req.ID, ErrReminderNotFound)
	}

	r := &reminders[idx]
	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	if req.When != nil {
		r.ReminderDateTime = *req.When
	}
	if req.Priority != nil {
		r.Priority = *req.Priority
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.port.WriteReminders(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	s.bus.Publish(events.RemindersChanged, r.ID)
	updated := *r
	return &updated, nil
}

// MarkCompleted flags the reminder as done and records the completion time.
// Completing an already-completed reminder fails rather than moving its
// completion time.
func (s *service) MarkCompleted(ctx context.Context, id int) (*models.Reminder, error) {
	if id <= 0 {
		return nil, ErrInvalidReminderID
	}

	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(reminders, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: reminder %d: %w", models.ErrNotFound, id, ErrReminderNotFound)
	}
	if reminders[idx].Completed {
		return nil, fmt.Errorf("reminder %d: %w", id, ErrAlreadyCompleted)
	}

	now := s.now().UTC()
	r := &reminders[idx]
	r.Completed = true
	r.CompletedAt = &now
	r.UpdatedAt = now

	if err := s.port.WriteReminders(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}

	s.bus.Publish(events.RemindersChanged, id)
	updated := *r
	return &updated, nil
}

// Delete removes the reminder permanently.
func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidReminderID
	}

	reminders, err := s.port.ReadReminders(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(reminders, id)
	if idx < 0 {
		return fmt.Errorf("%w: reminder %d: %w", models.ErrNotFound, id, ErrReminderNotFound)
	}

	reminders = append(reminders[:idx], reminders[idx+1:]...)
	if err := s.port.WriteReminders(ctx, reminders); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.bus.Publish(events.RemindersChanged, id)
	return nil
}

func (s *service) validateCreate(req CreateRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyTitle)
	}
	if !models.ValidReminderType(req.Type) {
		return fmt.Errorf("%w: %w: %q", models.ErrValidation, ErrInvalidType, req.Type)
	}
	if !models.ValidPriority(req.Priority) {
		return fmt.Errorf("%w: %w: %q", models.ErrValidation, ErrInvalidPriority, req.Priority)
	}
	if req.When.IsZero() {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrMissingDateTime)
	}
	if req.When.Before(s.now()) {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrDateTimeInPast)
	}
	return nil
}

func (s *service) validateUpdate(req UpdateRequest) error {
	if req.Title != nil && *req.Title == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyTitle)
	}
	if req.Type != nil && !models.ValidReminderType(*req.Type) {
		return fmt.Errorf("%w: %w: %q", models.ErrValidation, ErrInvalidType, *req.Type)
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return fmt.Errorf("%w: %w: %q", models.ErrValidation, ErrInvalidPriority, *req.Priority)
	}
	return nil
}

func indexOf(reminders []models.Reminder, id int) int {
	for i := range reminders {
		if reminders[i].ID == id {
			return i
		}
	}
	return -1
}
