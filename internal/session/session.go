package session

import (
	"context"
	"errors"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/medicine"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "session_id"

// ErrNotFound is returned by stores for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Session is the per-browser state. An empty UserID means anonymous.
type Session struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id,omitempty"`
	Remember   bool           `json:"remember"`
	LastResult *medicine.Info `json:"last_result,omitempty"`
	ExpiresAt  time.Time      `json:"expires_at"`
	CreatedAt  time.Time      `json:"created_at"`

	// stored is false until the session has been written to a store.
	stored bool
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// Stored reports whether the session exists in the store.
func (s *Session) Stored() bool {
	return s != nil && s.stored
}

// SetLastResult replaces the record shown by the result view.
func (s *Session) SetLastResult(info medicine.Info) {
	s.LastResult = &info
}

// Store persists sessions.
type Store interface {
	Find(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type contextKey string

const sessionKey contextKey = "session"

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored by the session middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.Authenticated() {
		return "", false
	}
	return s.UserID, true
}
