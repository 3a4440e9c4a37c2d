package session

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/storage"
)

func TestLoginWithValidCredentials(t *testing.T) {
	mem := &storage.Memory{}
	svc := NewService(mem)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	user, err := svc.Login(context.Background(), "admin@pipelinepro.com", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != "Administrator" || user.Name != "Admin User" {
		t.Errorf("unexpected user: %+v", user)
	}

	if mem.Session == nil {
		t.Fatal("no session marker stored")
	}
	decoded, err := base64.StdEncoding.DecodeString(mem.Session.Token)
	if err != nil {
		t.Fatalf("token is not base64: %v", err)
	}
	if want := "admin@pipelinepro.com:1700000000000"; string(decoded) != want {
		t.Errorf("token payload = %q, want %q", decoded, want)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	mem := &storage.Memory{}
	svc := NewService(mem)
	ctx := context.Background()

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "admin@pipelinepro.com", "nope"},
		{"unknown email", "nobody@pipelinepro.com", "admin123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, models.ErrInvalidCredentials) {
				t.Errorf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
	if mem.Session != nil {
		t.Error("failed login stored a session marker")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	mem := &storage.Memory{}
	svc := NewService(mem)
	ctx := context.Background()

	if svc.IsAuthenticated(ctx) {
		t.Fatal("authenticated before login")
	}
	if _, err := svc.CurrentUser(ctx); !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("CurrentUser before login = %v, want ErrNotAuthenticated", err)
	}

	if _, err := svc.Login(ctx, "user@pipelinepro.com", "user123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !svc.IsAuthenticated(ctx) {
		t.Error("not authenticated after login")
	}
	user, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.Email != "user@pipelinepro.com" {
		t.Errorf("Email = %q", user.Email)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if svc.IsAuthenticated(ctx) {
		t.Error("still authenticated after logout")
	}
}

func TestLogoutWhileSignedOut(t *testing.T) {
	svc := NewService(&storage.Memory{})
	if err := svc.Logout(context.Background()); err != nil {
		t.Errorf("Logout while signed out: %v", err)
	}
}

func TestStorageErrorReadsAsSignedOut(t *testing.T) {
	mem := &storage.Memory{ReadErr: models.ErrStorageUnavailable}
	svc := NewService(mem)
	if svc.IsAuthenticated(context.Background()) {
		t.Error("storage error reported as authenticated")
	}
}
