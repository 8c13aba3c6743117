package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager maps the session cookie to a stored Session.
type Manager struct {
	store       Store
	ttl         time.Duration
	rememberTTL time.Duration
	secure      bool
	lg          *zap.Logger
	now         func() time.Time
}

// Options configures a Manager. Zero durations fall back to 24 hours and 30 days.
type Options struct {
	TTL         time.Duration
	RememberTTL time.Duration
	Secure      bool
}

func NewManager(store Store, opts Options, lg *zap.Logger) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = 30 * 24 * time.Hour
	}
	return &Manager{
		store:       store,
		ttl:         opts.TTL,
		rememberTTL: opts.RememberTTL,
		secure:      opts.Secure,
		lg:          lg,
		now:         time.Now,
	}
}

// Load returns the session named by the request cookie. Missing, unknown and
// expired sessions yield a fresh anonymous session that is not stored until Save.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh()
	}

	s, err := m.store.Find(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.lg.Warn("session lookup failed", zap.Error(err))
		}
		return m.fresh()
	}

	if s.ExpiresAt.Before(m.now()) {
		if err := m.store.Delete(r.Context(), s.ID); err != nil {
			m.lg.Warn("expired session delete failed", zap.Error(err))
		}
		return m.fresh()
	}
	return s
}

// Current returns the session attached to the request context by the session
// middleware, loading it when the middleware did not run.
func (m *Manager) Current(r *http.Request) *Session {
	if s, ok := FromContext(r.Context()); ok {
		return s
	}
	return m.Load(r)
}

// Save stores s and sets the session cookie on w.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	m.setCookie(w, s)
	return nil
}

// Login authenticates s as userID. The session id is rotated; the last result
// carries over to the new session.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, s *Session, userID string, remember bool) (*Session, error) {
	if s.Stored() {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
	}

	next := m.fresh()
	next.UserID = userID
	next.Remember = remember
	next.LastResult = s.LastResult
	if remember {
		next.ExpiresAt = next.CreatedAt.Add(m.rememberTTL)
	}

	if err := m.Save(ctx, w, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Logout removes s from the store and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s.Stored() {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) fresh() *Session {
	now := m.now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
}

func (m *Manager) setCookie(w http.ResponseWriter, s *Session) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Without "remember me" the cookie lives for the browser session only.
	if s.Remember {
		c.Expires = s.ExpiresAt
		c.MaxAge = int(s.ExpiresAt.Sub(m.now()).Seconds())
	}
	http.SetCookie(w, c)
}
