package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterSet_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(2, time.Minute)
	set.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		set.allow(fmt.Sprintf("10.0.%d.%d", i/10, i%10))
	}
	assert.Equal(t, 100, set.size())

	now = now.Add(30 * time.Second)
	assert.True(t, set.allow("192.0.2.1"))
	assert.Equal(t, 101, set.size())

	now = now.Add(45 * time.Second)
	assert.True(t, set.allow("192.0.2.1"))
	// The first hundred clients went idle a minute ago; the active one stays.
	assert.Equal(t, 1, set.size())
}

func TestLimiterSet_KeepsActiveClientLimited(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(2, time.Minute)
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("192.0.2.1"))
	assert.True(t, set.allow("192.0.2.1"))
	assert.False(t, set.allow("192.0.2.1"))

	now = now.Add(30 * time.Second)
	assert.True(t, set.allow("192.0.2.1"))
	assert.False(t, set.allow("192.0.2.1"))

	// The sweep at the next minute keeps the client seen 30s ago.
	now = now.Add(30 * time.Second)
	set.allow("198.51.100.7")
	assert.Equal(t, 2, set.size())
}

func TestRateLimit_UsesSharedSet(t *testing.T) {
	set := newLimiterSet(1, time.Minute)
	h := rateLimit(set, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code)
	}
	assert.Equal(t, 1, set.size())
}
