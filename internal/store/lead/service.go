// Package lead implements the lead store: CRUD over the persisted lead
// collection plus the stage-transition and archive/duplicate operations the
// board is built on.
package lead

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/storage"
)

// Service defines all lead-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]models.Lead, error)
	Active(ctx context.Context) ([]models.Lead, error)
	GetByID(ctx context.Context, id int) (*models.Lead, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Lead, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Lead, error)
	Delete(ctx context.Context, id int) error

	// Board operations
	Archive(ctx context.Context, id int) error
	Duplicate(ctx context.Context, id int) (*models.Lead, error)
	ChangeStage(ctx context.Context, id int, stageTitle string) (*models.Lead, error)
}

// CreateRequest encapsulates all data needed to create a lead
type CreateRequest struct {
	Name           string
	Email          string
	Phone          string
	EstimatedValue float64
	Date           string
	Column         string
}

// UpdateRequest encapsulates a partial lead update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	ID             int
	Name           *string
	Email          *string
	Phone          *string
	EstimatedValue *float64
	Date           *string
	Column         *string
	Archived       *bool
}

// service implements Service interface
type service struct {
	port   storage.Port
	stages models.StageSet
	bus    events.Publisher
	now    func() time.Time
}

// NewService creates a new lead service. The stage set is used to validate
// stage references at write time.
func NewService(port storage.Port, stages models.StageSet, bus events.Publisher) Service {
	return &service{
		port:   port,
		stages: stages,
		bus:    bus,
		now:    time.Now,
	}
}

// List returns all leads, archived included. An unreadable backend falls
// back to the bundled seed set so the board always has something to show.
func (s *service) List(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.port.ReadLeads(ctx)
	if err != nil {
		slog.Error("failed to read leads, using seed data", "error", err)
		return storage.SeedLeads(), nil
	}
	return leads, nil
}

// Active returns all non-archived leads.
func (s *service) Active(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := leads[:0:0]
	for _, l := range leads {
		if !l.Archived {
			active = append(active, l)
		}
	}
	return active, nil
}

// GetByID returns the lead with the given id, archived or not.
func (s *service) GetByID(ctx context.Context, id int) (*models.Lead, error) {
	if id <= 0 {
		return nil, ErrInvalidLeadID
	}
	leads, err := s.port.ReadLeads(ctx)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		if leads[i].ID == id {
			l := leads[i]
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w: lead %d: %w", models.ErrNotFound, id, ErrLeadNotFound)
}

// Create assigns a fresh id and timestamps, appends the lead, and persists
// the collection.
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Lead, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	leads, err := s.port.ReadLeads(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	newLead := models.Lead{
		ID:             models.NextLeadID(leads),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		EstimatedValue: req.EstimatedValue,
		Date:           req.Date,
		Column:         req.Column,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	leads = append(leads, newLead)
	if err := s.port.WriteLeads(ctx, leads); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.bus.Publish(events.LeadsChanged, newLead.ID)
	return &newLead, nil
}

// Update merges the non-nil request fields into the stored record and
// refreshes its update timestamp.
func (s *service) Update(ctx context.Context, req UpdateRequest) (*models.Lead, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidLeadID
	}
	if err := s.validateUpdate(req); err != nil {
		return nil, err
	}

	leads, err := s.port.ReadLeads(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(leads, req.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: lead %d: %w", models.ErrNotFound, req.ID, ErrLeadNotFound)
	}

	l := &leads[idx]
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Email != nil {
		l.Email = *req.Email
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.EstimatedValue != nil {
		l.EstimatedValue = *req.EstimatedValue
	}
	if req.Date != nil {
		l.Date = *req.Date
	}
	if req.Column != nil {
		l.Column = *req.Column
	}
	if req.Archived != nil {
		l.Archived = *req.Archived
	}
	l.UpdatedAt = s.now().UTC()

	if err := s.port.WriteLeads(ctx, leads); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.bus.Publish(events.LeadsChanged, l.ID)
	updated := *l
	return &updated, nil
}

// Delete removes the lead permanently.
func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidLeadID
	}

	leads, err := s.port.ReadLeads(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(leads, id)
	if idx < 0 {
		return fmt.Errorf("%w: lead %d: %w", models.ErrNotFound, id, ErrLeadNotFound)
	}

	leads = append(leads[:idx], leads[idx+1:]...)
	if err := s.port.WriteLeads(ctx, leads); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	s.bus.Publish(events.LeadsChanged, id)
	return nil
}

// Archive flags the lead so active views exclude it. The record stays
// retrievable by id.
func (s *service) Archive(ctx context.Context, id int) error {
	archived := true
	_, err := s.Update(ctx, UpdateRequest{ID: id, Archived: &archived})
	return err
}

// Duplicate clones an existing lead's fields into a new record with a fresh
// id. Nothing prevents duplicate names or emails.
func (s *service) Duplicate(ctx context.Context, id int) (*models.Lead, error) {
	src, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, CreateRequest{
		Name:           src.Name,
		Email:          src.Email,
		Phone:          src.Phone,
		EstimatedValue: src.EstimatedValue,
		Date:           src.Date,
		Column:         src.Column,
	})
}

// ChangeStage moves the lead to another pipeline stage. The target must be a
// currently configured stage; moving to the current stage is a no-op and
// produces no write or event.
func (s *service) ChangeStage(ctx context.Context, id int, stageTitle string) (*models.Lead, error) {
	if !s.stages.Contains(stageTitle) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStage, stageTitle)
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Column == stageTitle {
		return current, nil
	}

	return s.Update(ctx, UpdateRequest{ID: id, Column: &stageTitle})
}

func (s *service) validateCreate(req CreateRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyName)
	}
	if req.EstimatedValue < 0 {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrNegativeValue)
	}
	if !s.stages.Contains(req.Column) {
		return fmt.Errorf("%w: %q", models.ErrUnknownStage, req.Column)
	}
	return nil
}

func (s *service) validateUpdate(req UpdateRequest) error {
	if req.Name != nil && *req.Name == "" {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyName)
	}
	if req.EstimatedValue != nil && *req.EstimatedValue < 0 {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrNegativeValue)
	}
	if req.Column != nil && !s.stages.Contains(*req.Column) {
		return fmt.Errorf("%w: %q", models.ErrUnknownStage, *req.Column)
	}
	return nil
}

func indexOf(leads []models.Lead, id int) int {
	for i := range leads {
		if leads[i].ID == id {
			return i
		}
	}
	return -1
}
