package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/session"
	"golang.org/x/time/rate"
)

// SessionLoader resolves the request cookie to a session.
type SessionLoader interface {
	Load(r *http.Request) *session.Session
}

// SessionMiddleware attaches the caller's session to the request context.
// Anonymous callers get a fresh, unsaved session rather than an error.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := loader.Load(r)
			ctx := session.NewContext(r.Context(), s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginPath is where RequireAuth sends anonymous callers.
const LoginPath = "/auth/login"

// RequireAuth redirects anonymous callers to the login page, remembering
// where they were headed.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r.Context()); !ok {
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeNext returns next when it is a local path, and fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}

var allowed = map[string]struct{}{
	"http://localhost:5050": {},
	"http://localhost:5173": {},
	"http://127.0.0.1:5050": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limiterIdle is how long a client's limiter is kept after its last request.
const limiterIdle = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterSet hands out one limiter per client IP and forgets clients that have
// been idle for longer than idle.
type limiterSet struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newLimiterSet(perMinute int, idle time.Duration) *limiterSet {
	return &limiterSet{
		every:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		idle:     idle,
		now:      time.Now,
		visitors: map[string]*visitor{},
	}
}

func (s *limiterSet) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		for k, v := range s.visitors {
			if now.Sub(v.seen) >= s.idle {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(s.every, s.burst)}
		s.visitors[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimit allows perMinute requests per client IP, with a burst of the same
// size. Over-limit requests get 429.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return rateLimit(newLimiterSet(perMinute, limiterIdle), perMinute)
}

func rateLimit(set *limiterSet, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
