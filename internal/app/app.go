// Package app wires the application container: storage, event bus, and the
// store services, configured from the loaded config.
package app

import (
	"context"
	"fmt"

	"github.com/venda-crm/venda/internal/config"
	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/session"
	"github.com/venda-crm/venda/internal/storage"
	leadstore "github.com/venda-crm/venda/internal/store/lead"
	reminderstore "github.com/venda-crm/venda/internal/store/reminder"
)

// App holds all application services and provides dependency injection.
type App struct {
	Config *config.Config
	Bus    *events.Bus

	Leads     leadstore.Service
	Reminders reminderstore.Service
	Session   *session.Service

	store *storage.SQLite
}

// New opens the durable store and initializes every service. The caller owns
// the returned App and must Close it.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return build(cfg, store), nil
}

// NewWithPort builds an App on an explicit storage port, bypassing the
// on-disk database. Used by tests.
func NewWithPort(cfg *config.Config, port storage.Port) *App {
	bus := events.NewBus()
	return &App{
		Config:    cfg,
		Bus:       bus,
		Leads:     leadstore.NewService(port, cfg.Stages, bus),
		Reminders: reminderstore.NewService(port, bus),
		Session:   session.NewService(port),
	}
}

func build(cfg *config.Config, store *storage.SQLite) *App {
	var port storage.Port = store
	if cfg.SimulateLatency {
		port = storage.WithLatency(port, storage.DefaultProfile())
	}

	bus := events.NewBus()
	return &App{
		Config:    cfg,
		Bus:       bus,
		Leads:     leadstore.NewService(port, cfg.Stages, bus),
		Reminders: reminderstore.NewService(port, bus),
		Session:   session.NewService(port),
		store:     store,
	}
}

// Close releases the underlying storage.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
