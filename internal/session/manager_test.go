package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/db"
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	d, err := db.Connect(filepath.Join(t.TempDir(), "sessions.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(d) })

	store := NewGormStore(d)
	require.NoError(t, store.Migrate())
	return store
}

// sessionCookie returns the session cookie set on rec, if any.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func requestWith(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if c != nil {
		req.AddCookie(c)
	}
	return req
}

func TestManager_LoadWithoutCookieIsAnonymous(t *testing.T) {
	m := NewManager(newGormStore(t), Options{}, zap.NewNop())

	s := m.Load(requestWith(nil))

	assert.False(t, s.Authenticated())
	assert.False(t, s.Stored())
	assert.NotEmpty(t, s.ID)
	assert.Nil(t, s.LastResult)
}

func TestManager_SaveAndReload(t *testing.T) {
	m := NewManager(newGormStore(t), Options{}, zap.NewNop())
	ctx := context.Background()

	s := m.Load(requestWith(nil))
	s.SetLastResult(medicine.DemoInfo())

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, rec, s))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Zero(t, cookie.MaxAge, "anonymous sessions use browser-session cookies")

	loaded := m.Load(requestWith(cookie))
	assert.Equal(t, s.ID, loaded.ID)
	assert.True(t, loaded.Stored())
	require.NotNil(t, loaded.LastResult)
	assert.Equal(t, medicine.DemoInfo(), *loaded.LastResult)
}

func TestManager_UnknownCookieIsAnonymous(t *testing.T) {
	m := NewManager(newGormStore(t), Options{}, zap.NewNop())

	s := m.Load(requestWith(&http.Cookie{Name: CookieName, Value: "nonexistent"}))

	assert.NotEqual(t, "nonexistent", s.ID)
	assert.False(t, s.Stored())
}

func TestManager_ExpiredSessionDropped(t *testing.T) {
	store := newGormStore(t)
	m := NewManager(store, Options{TTL: time.Hour}, zap.NewNop())
	ctx := context.Background()

	s := m.Load(requestWith(nil))
	s.UserID = "user-1"
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, rec, s))

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	loaded := m.Load(requestWith(sessionCookie(rec)))
	assert.False(t, loaded.Authenticated())
	assert.NotEqual(t, s.ID, loaded.ID)

	_, err := store.Find(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_LoginRotatesSession(t *testing.T) {
	store := newGormStore(t)
	m := NewManager(store, Options{}, zap.NewNop())
	ctx := context.Background()

	anon := m.Load(requestWith(nil))
	anon.SetLastResult(medicine.ScanRequiredInfo())
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), anon))

	rec := httptest.NewRecorder()
	authed, err := m.Login(ctx, rec, anon, "user-1", true)
	require.NoError(t, err)

	assert.NotEqual(t, anon.ID, authed.ID)
	assert.Equal(t, "user-1", authed.UserID)
	require.NotNil(t, authed.LastResult)
	assert.Equal(t, medicine.ScanRequired, authed.LastResult.DetectionMethod)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, authed.ID, cookie.Value)
	assert.Greater(t, cookie.MaxAge, 0, "remember me sets a persistent cookie")

	_, err = store.Find(ctx, anon.ID)
	assert.ErrorIs(t, err, ErrNotFound, "old session id must not survive login")

	loaded := m.Load(requestWith(cookie))
	assert.True(t, loaded.Authenticated())
	assert.True(t, loaded.Remember)
}

func TestManager_Logout(t *testing.T) {
	store := newGormStore(t)
	m := NewManager(store, Options{}, zap.NewNop())
	ctx := context.Background()

	authed, err := m.Login(ctx, httptest.NewRecorder(), m.Load(requestWith(nil)), "user-1", false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Logout(ctx, rec, authed))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	_, err = store.Find(ctx, authed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_DeleteExpired(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, &Session{ID: "old", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Save(ctx, &Session{ID: "new", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	n, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = store.Find(ctx, "new")
	assert.NoError(t, err)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx)
	assert.False(t, ok)

	ctx = NewContext(ctx, &Session{ID: "s", UserID: "u"})
	uid, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u", uid)

	_, ok = UserIDFromContext(NewContext(context.Background(), &Session{ID: "anon"}))
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	// This test requires REDIS_ADDR to be set
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	store, err := NewRedisStore(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := &Session{ID: "test-" + time.Now().Format("150405.000"), UserID: "u", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Minute)}
	s.SetLastResult(medicine.DemoInfo())
	require.NoError(t, store.Save(ctx, s))
	t.Cleanup(func() { store.Delete(ctx, s.ID) })

	got, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "u", got.UserID)
	require.NotNil(t, got.LastResult)
	assert.Equal(t, "Paracetamol", got.LastResult.MedicineName)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Find(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
