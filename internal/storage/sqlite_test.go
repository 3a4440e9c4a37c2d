package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/venda-crm/venda/internal/models"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := OpenPath(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestFreshDatabaseServesSeedLeads(t *testing.T) {
	store := openTestStore(t)

	leads, err := store.ReadLeads(context.Background())
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	seed := SeedLeads()
	if len(leads) != len(seed) {
		t.Fatalf("got %d leads, want %d", len(leads), len(seed))
	}
	if leads[0].Name != seed[0].Name || leads[0].ID != seed[0].ID {
		t.Errorf("leads[0] = %+v, want %+v", leads[0], seed[0])
	}
}

func TestLeadsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	written := []models.Lead{
		{
			ID: 7, Name: "Test Lead", Email: "t@x.com", Phone: "555",
			EstimatedValue: 123.45, Date: "2024-02-01", Column: "Hot Lead",
			CreatedAt: time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.February, 2, 8, 0, 0, 0, time.UTC),
		},
		{ID: 8, Name: "Archived Lead", Column: "Closed", Archived: true},
	}
	if err := store.WriteLeads(ctx, written); err != nil {
		t.Fatalf("WriteLeads: %v", err)
	}

	got, err := store.ReadLeads(ctx)
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2", len(got))
	}
	if got[0].ID != 7 || got[0].EstimatedValue != 123.45 || !got[0].CreatedAt.Equal(written[0].CreatedAt) {
		t.Errorf("got[0] = %+v", got[0])
	}
	if !got[1].Archived {
		t.Error("archived flag lost")
	}
}

func TestWriteEmptyLeadsSticks(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// An explicitly written empty collection must not fall back to seed data.
	if err := store.WriteLeads(ctx, []models.Lead{}); err != nil {
		t.Fatalf("WriteLeads: %v", err)
	}
	got, err := store.ReadLeads(ctx)
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d leads, want 0", len(got))
	}
}

func TestCorruptLeadDocumentFallsBackToSeed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.set(ctx, KeyLeads, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.ReadLeads(ctx)
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if len(got) != len(SeedLeads()) {
		t.Errorf("got %d leads, want seed set", len(got))
	}
}

func TestRemindersStartEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ReadReminders(context.Background())
	if err != nil {
		t.Fatalf("ReadReminders: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d reminders, want 0", len(got))
	}
}

func TestRemindersRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	completedAt := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	written := []models.Reminder{
		{
			ID: 1, LeadID: 3, LeadName: "Priya Raman", Type: "call",
			Title: "Follow up", Notes: "Re: estimate",
			ReminderDateTime: time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC),
			Priority:         "high",
		},
		{ID: 2, Title: "Done one", Type: "task", Priority: "low", Completed: true, CompletedAt: &completedAt},
	}
	if err := store.WriteReminders(ctx, written); err != nil {
		t.Fatalf("WriteReminders: %v", err)
	}

	got, err := store.ReadReminders(ctx)
	if err != nil {
		t.Fatalf("ReadReminders: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reminders, want 2", len(got))
	}
	if got[0].LeadName != "Priya Raman" || !got[0].ReminderDateTime.Equal(written[0].ReminderDateTime) {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].CompletedAt == nil || !got[1].CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v", got[1].CompletedAt)
	}
}

func TestCorruptReminderDocumentStartsEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.set(ctx, KeyReminders, "[[["); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.ReadReminders(ctx)
	if err != nil {
		t.Fatalf("ReadReminders: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d reminders, want 0", len(got))
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess, err := store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("fresh database has a session: %+v", sess)
	}

	want := &models.Session{
		Token: "opaque-token",
		User:  models.User{ID: 1, Email: "admin@pipelinepro.com", Name: "Admin User", Role: "Administrator"},
	}
	if err := store.WriteSession(ctx, want); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}

	got, err := store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if got == nil {
		t.Fatal("session not found after write")
	}
	if got.Token != want.Token || got.User != want.User {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	got, err = store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession after clear: %v", err)
	}
	if got != nil {
		t.Errorf("session survived clear: %+v", got)
	}
}

func TestSessionNeedsBothMarkers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A token without a user record is not a session.
	if err := store.set(ctx, KeyAuthToken, "dangling"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if got != nil {
		t.Errorf("dangling token read as session: %+v", got)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenPath(ctx, path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := store.WriteLeads(ctx, []models.Lead{{ID: 9, Name: "Persistent", Column: "Closed"}}); err != nil {
		t.Fatalf("WriteLeads: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenPath(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.ReadLeads(ctx)
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Persistent" {
		t.Errorf("got %+v", got)
	}
}
