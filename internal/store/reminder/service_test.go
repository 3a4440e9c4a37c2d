package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/storage"
)

type busRecorder struct {
	events []events.EventType
}

func (r *busRecorder) Publish(t events.EventType, id int) {
	r.events = append(r.events, t)
}

var testNow = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*service, *storage.Memory, *busRecorder) {
	t.Helper()
	mem := &storage.Memory{}
	rec := &busRecorder{}
	svc := NewService(mem, rec).(*service)
	svc.now = func() time.Time { return testNow }
	return svc, mem, rec
}

func validCreate() CreateRequest {
	return CreateRequest{
		LeadID:   3,
		LeadName: "Priya Raman",
		Type:     models.ReminderTypeCall,
		Title:    "Follow up on estimate",
		When:     testNow.Add(24 * time.Hour),
		Priority: models.PriorityHigh,
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	svc, _, rec := newTestService(t)

	r, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID != 1 {
		t.Errorf("ID = %d, want 1", r.ID)
	}
	if !r.CreatedAt.Equal(testNow) || !r.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps not set from clock: %+v", r)
	}
	if r.Completed || r.CompletedAt != nil {
		t.Errorf("new reminder must start incomplete: %+v", r)
	}
	if len(rec.events) != 1 || rec.events[0] != events.RemindersChanged {
		t.Errorf("events = %v, want one RemindersChanged", rec.events)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		want   error
	}{
		{"empty title", func(r *CreateRequest) { r.Title = "" }, ErrEmptyTitle},
		{"bad type", func(r *CreateRequest) { r.Type = "fax" }, ErrInvalidType},
		{"bad priority", func(r *CreateRequest) { r.Priority = "urgent" }, ErrInvalidPriority},
		{"zero time", func(r *CreateRequest) { r.When = time.Time{} }, ErrMissingDateTime},
		{"past time", func(r *CreateRequest) { r.When = testNow.Add(-time.Minute) }, ErrDateTimeInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("got %v, want ErrValidation in chain", err)
			}
		})
	}
	if len(rec.events) != 0 {
		t.Errorf("rejected creates must not publish, got %v", rec.events)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.now = func() time.Time { return testNow.Add(time.Hour) }
	title := "Reschedule the call"
	updated, err := svc.Update(ctx, UpdateRequest{ID: created.ID, Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != title {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Type != created.Type || updated.Priority != created.Priority {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed")
	}
}

func TestMarkCompleted(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec.events = nil

	done, err := svc.MarkCompleted(ctx, created.ID)
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if !done.Completed {
		t.Error("Completed not set")
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", done.CompletedAt, testNow)
	}
	if len(rec.events) != 1 {
		t.Errorf("events = %v, want one RemindersChanged", rec.events)
	}
}

func TestMarkCompletedTwiceFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := svc.MarkCompleted(ctx, created.ID)
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	svc.now = func() time.Time { return testNow.Add(time.Hour) }
	if _, err := svc.MarkCompleted(ctx, created.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second MarkCompleted = %v, want ErrAlreadyCompleted", err)
	}

	// Completion time must not have moved.
	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("CompletedAt moved: %v, want %v", got.CompletedAt, first.CompletedAt)
	}
}

func TestMarkCompletedMissingIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.MarkCompleted(context.Background(), 42)
	if !errors.Is(err, models.ErrNotFound) || !errors.Is(err, ErrReminderNotFound) {
		t.Errorf("got %v, want ErrNotFound and ErrReminderNotFound", err)
	}
}

func TestDeleteRemovesReminder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestListByLead(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, leadID := range []int{3, 5, 3} {
		req := validCreate()
		req.LeadID = leadID
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := svc.ListByLead(ctx, 3)
	if err != nil {
		t.Fatalf("ListByLead: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reminders for lead 3, want 2", len(got))
	}
	for _, r := range got {
		if r.LeadID != 3 {
			t.Errorf("wrong lead id %d", r.LeadID)
		}
	}

	// Reminders survive independently of the lead; an unknown lead id simply
	// matches nothing.
	none, err := svc.ListByLead(ctx, 99)
	if err != nil {
		t.Fatalf("ListByLead: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d reminders for unknown lead, want 0", len(none))
	}
}

func TestUpcomingAndOverdue(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	completedAt := testNow.Add(-time.Hour)
	mem.Reminders = []models.Reminder{
		{ID: 1, Title: "overdue", Type: "call", Priority: "low", ReminderDateTime: testNow.Add(-48 * time.Hour)},
		{ID: 2, Title: "soon", Type: "call", Priority: "low", ReminderDateTime: testNow.Add(48 * time.Hour)},
		{ID: 3, Title: "far", Type: "call", Priority: "low", ReminderDateTime: testNow.Add(10 * 24 * time.Hour)},
		{ID: 4, Title: "done", Type: "call", Priority: "low", ReminderDateTime: testNow.Add(-time.Hour), Completed: true, CompletedAt: &completedAt},
	}

	up, err := svc.Upcoming(ctx)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(up) != 1 || up[0].ID != 2 {
		t.Errorf("Upcoming = %v, want only id 2", up)
	}

	over, err := svc.Overdue(ctx)
	if err != nil {
		t.Fatalf("Overdue: %v", err)
	}
	if len(over) != 1 || over[0].ID != 1 {
		t.Errorf("Overdue = %v, want only id 1", over)
	}
}

func TestIDsAllocatedPastCurrentMax(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Deleting a non-max record leaves the high-water mark alone; the freed
	// id must not come back.
	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	third, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if third.ID != second.ID+1 {
		t.Errorf("id = %d, want %d", third.ID, second.ID+1)
	}
}
