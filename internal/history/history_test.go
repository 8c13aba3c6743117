package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/db"
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.Connect(filepath.Join(t.TempDir(), "history.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(d) })
	require.NoError(t, Init(d))
	return NewStore(d)
}

// clock returns successive timestamps one minute apart.
func clock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func info(name string) medicine.Info {
	i := medicine.DemoInfo()
	i.MedicineName = name
	return i
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newStore(t)
	s.now = clock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, name := range []string{"Aspirin", "Ibuprofen", "Cetirizine"} {
		_, err := s.Append(ctx, "user-1", info(name))
		require.NoError(t, err)
	}
	_, err := s.Append(ctx, "user-2", info("Other"))
	require.NoError(t, err)

	scans, err := s.ListByUser(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, scans, 3)
	assert.Equal(t, "Cetirizine", scans[0].MedicineName)
	assert.Equal(t, "Aspirin", scans[2].MedicineName)
	assert.Equal(t, "Analgesic/Antipyretic", scans[0].Category)

	limited, err := s.ListByUser(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_AppendRejectsBlankName(t *testing.T) {
	s := newStore(t)

	_, err := s.Append(context.Background(), "user-1", info("  "))
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestStore_AnonymousRowsNotListed(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec, err := s.Append(ctx, "", info("Aspirin"))
	require.NoError(t, err)
	assert.Nil(t, rec.UserID)

	scans, err := s.ListByUser(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestStore_Stats(t *testing.T) {
	s := newStore(t)
	s.now = clock(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	st, err := s.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, st.TotalScans)
	assert.Equal(t, NeverScanned, st.LastScanDate())

	for i := 0; i < 2; i++ {
		_, err := s.Append(ctx, "user-1", info("Aspirin"))
		require.NoError(t, err)
	}

	st, err = s.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalScans)
	assert.Equal(t, "2024-03-01", st.LastScanDate())
}

func TestListHandler(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.Append(ctx, "user-1", info("Aspirin"))
	require.NoError(t, err)

	h := NewHandler(s, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(session.NewContext(req.Context(), &session.Session{ID: "sid", UserID: "user-1"}))
	rec := httptest.NewRecorder()

	h.SetupRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body listResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Scans, 1)
	assert.Equal(t, "Aspirin", body.Scans[0].MedicineName)
}

func TestListHandler_RequiresLogin(t *testing.T) {
	h := NewHandler(newStore(t), zap.NewNop())
	rec := httptest.NewRecorder()

	h.SetupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
