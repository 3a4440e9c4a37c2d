package storage

import (
	"context"
	"testing"
	"time"

	"github.com/venda-crm/venda/internal/models"
)

func TestZeroProfileIsPassThrough(t *testing.T) {
	mem := &Memory{}
	port := WithLatency(mem, Profile{})
	ctx := context.Background()

	leads := []models.Lead{{ID: 1, Name: "x", Column: "Cold Lead"}}
	if err := port.WriteLeads(ctx, leads); err != nil {
		t.Fatalf("WriteLeads: %v", err)
	}
	got, err := port.ReadLeads(ctx)
	if err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if len(got) != 1 || got[0].Name != "x" {
		t.Errorf("got %+v", got)
	}
}

func TestLatencyDelaysOperation(t *testing.T) {
	mem := &Memory{}
	port := WithLatency(mem, Profile{LeadRead: 30 * time.Millisecond})

	start := time.Now()
	if _, err := port.ReadLeads(context.Background()); err != nil {
		t.Fatalf("ReadLeads: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("read returned after %v, want at least 30ms", elapsed)
	}
}

func TestLatencyIgnoresCancelledContext(t *testing.T) {
	mem := &Memory{}
	port := WithLatency(mem, Profile{LeadWrite: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The simulated request still lands.
	if err := port.WriteLeads(ctx, []models.Lead{{ID: 1, Name: "x"}}); err != nil {
		t.Fatalf("WriteLeads: %v", err)
	}
	if len(mem.Leads) != 1 {
		t.Errorf("write dropped on cancelled context")
	}
}

func TestLatencyPropagatesErrors(t *testing.T) {
	mem := &Memory{ReadErr: models.ErrStorageUnavailable}
	port := WithLatency(mem, Profile{})

	if _, err := port.ReadLeads(context.Background()); err == nil {
		t.Error("expected error from wrapped port")
	}
}

func TestDefaultProfileMatchesOriginalDelays(t *testing.T) {
	p := DefaultProfile()
	if p.LeadRead != 300*time.Millisecond || p.LeadWrite != 400*time.Millisecond {
		t.Errorf("lead delays = %v/%v", p.LeadRead, p.LeadWrite)
	}
	if p.SessionWrite != time.Second {
		t.Errorf("session write delay = %v", p.SessionWrite)
	}
}
