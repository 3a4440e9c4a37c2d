// Package session implements the mock authentication gate. Credentials are
// checked against a small bundled user list and the resulting opaque token
// plus user record are persisted through the storage port; their presence is
// what gates access to the board.
package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/storage"
)

type account struct {
	user     models.User
	password string
}

// Bundled mock users, carried over from the original client.
var accounts = []account{
	{
		user:     models.User{ID: 1, Email: "admin@pipelinepro.com", Name: "Admin User", Role: "Administrator"},
		password: "admin123",
	},
	{
		user:     models.User{ID: 2, Email: "user@pipelinepro.com", Name: "Regular User", Role: "User"},
		password: "user123",
	},
}

// Service handles login, logout and session lookup.
type Service struct {
	port storage.Port
	now  func() time.Time
}

// NewService creates a new session service.
func NewService(port storage.Port) *Service {
	return &Service{port: port, now: time.Now}
}

// Login verifies the credentials, stores a session marker, and returns the
// signed-in user.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	for _, a := range accounts {
		if a.user.Email == email && a.password == password {
			sess := &models.Session{
				Token: s.token(email),
				User:  a.user,
			}
			if err := s.port.WriteSession(ctx, sess); err != nil {
				return nil, fmt.Errorf("failed to store session: %w", err)
			}
			user := a.user
			return &user, nil
		}
	}
	return nil, models.ErrInvalidCredentials
}

// Logout removes the stored session marker. Logging out while signed out is
// not an error.
func (s *Service) Logout(ctx context.Context) error {
	return s.port.ClearSession(ctx)
}

// CurrentUser returns the signed-in user, or ErrNotAuthenticated when no
// session marker is stored.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := s.port.ReadSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, models.ErrNotAuthenticated
	}
	user := sess.User
	return &user, nil
}

// IsAuthenticated reports whether a session marker is present. Storage
// errors read as signed out.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.port.ReadSession(ctx)
	return err == nil && sess != nil
}

// token builds the opaque session token the original client used:
// base64(email:timestamp). It is never parsed back.
func (s *Service) token(email string) string {
	raw := fmt.Sprintf("%s:%d", email, s.now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
