package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

type fakeRecorder struct {
	routes   []string
	statuses []int
}

func (f *fakeRecorder) RecordRateLimited(route string) { f.routes = append(f.routes, route) }

func (f *fakeRecorder) RecordHTTPRequest(_, _, route string, status int, _ time.Duration) {
	f.routes = append(f.routes, route)
	f.statuses = append(f.statuses, status)
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) }

func TestRateLimiter(t *testing.T) {
	counter := &fakeCounter{}
	rec := &fakeRecorder{}
	rl := NewRateLimiter(counter, 2, time.Minute, false, nopLogger{}).WithRecorder(rec)

	r := mux.NewRouter()
	r.Handle("/api/v1/interviews", rl.Middleware(http.HandlerFunc(ok))).Methods(http.MethodPost)

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, do("10.0.0.1").Code)

	w := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{"/api/v1/interviews"}, rec.routes)

	// другой адрес считается отдельно
	assert.Equal(t, http.StatusCreated, do("10.0.0.2").Code)
	assert.Equal(t, int64(3), counter.counts["rl:interviews:10.0.0.1"])
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	send := func(h http.Handler, xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.9:4321"
		req.Header.Set("X-Forwarded-For", xff)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("ignored by default", func(t *testing.T) {
		counter := &fakeCounter{}
		h := NewRateLimiter(counter, 1, time.Minute, false, nopLogger{}).Middleware(http.HandlerFunc(ok))

		// смена заголовка не обходит лимит
		assert.Equal(t, http.StatusCreated, send(h, "203.0.113.7"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "203.0.113.8"))
		assert.Equal(t, int64(2), counter.counts["rl:interviews:10.0.0.9"])
	})

	t.Run("trusted proxy", func(t *testing.T) {
		counter := &fakeCounter{}
		h := NewRateLimiter(counter, 1, time.Minute, false, nopLogger{}).
			WithTrustForwardedFor(true).
			Middleware(http.HandlerFunc(ok))

		send(h, "198.51.100.1, 203.0.113.7")
		assert.Equal(t, int64(1), counter.counts["rl:interviews:203.0.113.7"])
	})
}

func TestRateLimiter_CounterFailure(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis: connection refused")}

	w := httptest.NewRecorder()
	NewRateLimiter(counter, 1, time.Minute, true, nopLogger{}).
		Middleware(http.HandlerFunc(ok)).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	NewRateLimiter(counter, 1, time.Minute, false, nopLogger{}).
		Middleware(http.HandlerFunc(ok)).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	rec := &fakeRecorder{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(rec, "interview-scheduler"))
	r.HandleFunc("/api/v1/interviews/{interviewId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/interviews/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, []string{"/api/v1/interviews/{interviewId}", "/healthz"}, rec.routes)
	assert.Equal(t, []int{http.StatusNotFound, http.StatusOK}, rec.statuses)
}
