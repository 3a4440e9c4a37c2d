package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/venda-crm/venda/internal/models"
)

// SQLite implements Port over a single key/value table, mirroring the
// localStorage document model the original client used: one JSON array per
// key, rewritten wholesale on every mutation.
type SQLite struct {
	db *sql.DB
}

// Open initializes the database under ~/.venda and returns a store backed by
// it.
func Open(ctx context.Context) (*SQLite, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".venda")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return OpenPath(ctx, filepath.Join(dir, "venda.db"))
}

// OpenPath opens or creates the database at the given path. Use ":memory:"
// for tests.
func OpenPath(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: one writer, whole-document rewrites.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeQuietly(db)
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}

// runMigrations creates the key/value schema.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS storage (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// get reads the raw document under key. Missing keys return ("", false, nil).
func (s *SQLite) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %v", models.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// set rewrites the full document under key.
func (s *SQLite) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", models.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM storage WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", models.ErrStorageUnavailable, key, err)
	}
	return nil
}

// ReadLeads returns the stored lead collection, falling back to the bundled
// seed set when the document is absent or corrupt.
func (s *SQLite) ReadLeads(ctx context.Context) ([]models.Lead, error) {
	raw, ok, err := s.get(ctx, KeyLeads)
	if err != nil {
		return nil, err
	}
	if !ok {
		return SeedLeads(), nil
	}
	var leads []models.Lead
	if err := json.Unmarshal([]byte(raw), &leads); err != nil {
		slog.Error("corrupt lead document, using seed data", "error", err)
		return SeedLeads(), nil
	}
	return leads, nil
}

// WriteLeads replaces the stored lead collection.
func (s *SQLite) WriteLeads(ctx context.Context, leads []models.Lead) error {
	raw, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("failed to encode leads: %w", err)
	}
	return s.set(ctx, KeyLeads, string(raw))
}

// ReadReminders returns the stored reminder collection. Unlike leads there is
// no seed set; missing or corrupt documents yield an empty collection.
func (s *SQLite) ReadReminders(ctx context.Context) ([]models.Reminder, error) {
	raw, ok, err := s.get(ctx, KeyReminders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var reminders []models.Reminder
	if err := json.Unmarshal([]byte(raw), &reminders); err != nil {
		slog.Error("corrupt reminder document, starting empty", "error", err)
		return nil, nil
	}
	return reminders, nil
}

// WriteReminders replaces the stored reminder collection.
func (s *SQLite) WriteReminders(ctx context.Context, reminders []models.Reminder) error {
	raw, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	return s.set(ctx, KeyReminders, string(raw))
}

// ReadSession returns the session marker. Both the token and the user record
// must be present for a session to exist.
func (s *SQLite) ReadSession(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.get(ctx, KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, nil
	}

	raw, ok, err := s.get(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Error("corrupt user record, treating as signed out", "error", err)
		return nil, nil
	}
	return &models.Session{Token: token, User: user}, nil
}

// WriteSession stores the session marker.
func (s *SQLite) WriteSession(ctx context.Context, sess *models.Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.set(ctx, KeyAuthToken, sess.Token); err != nil {
		return err
	}
	return s.set(ctx, KeyUserData, string(raw))
}

// ClearSession removes the session marker.
func (s *SQLite) ClearSession(ctx context.Context) error {
	if err := s.remove(ctx, KeyAuthToken); err != nil {
		return err
	}
	return s.remove(ctx, KeyUserData)
}
