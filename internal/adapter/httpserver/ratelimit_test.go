package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyRateLimiter_AllowsWithinLimit(t *testing.T) {
	l := newKeyRateLimiter(60) // 60 req/min = 1 req/s, burst 10

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("key1")
		assert.True(t, ok, "request %d should be allowed", i)
	}
}

func TestKeyRateLimiter_BlocksExcessRequests(t *testing.T) {
	l := newKeyRateLimiter(60) // burst = 10

	for i := 0; i < 10; i++ {
		l.Allow("key1")
	}

	ok, wait := l.Allow("key1")
	assert.False(t, ok, "should be blocked after exhausting burst")
	assert.Greater(t, wait, time.Duration(0))
}

func TestKeyRateLimiter_IndependentKeys(t *testing.T) {
	l := newKeyRateLimiter(60)

	for i := 0; i < 10; i++ {
		l.Allow("key1")
	}
	ok, _ := l.Allow("key1")
	assert.False(t, ok)

	ok, _ = l.Allow("key2")
	assert.True(t, ok)
}

func TestKeyRateLimiter_SweepsIdleKeys(t *testing.T) {
	l := newKeyRateLimiter(60)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key2")
	assert.Equal(t, 2, l.Len())

	now = now.Add(limiterIdleTTL + time.Minute)
	l.Allow("key3")
	assert.Equal(t, 1, l.Len(), "idle buckets are dropped")
}

func TestIPRateLimiter_Middleware_AllowsNormalTraffic(t *testing.T) {
	l := newIPRateLimiter(60)

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/v1/tables", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter_Middleware_Returns429(t *testing.T) {
	l := newIPRateLimiter(6) // 6 req/min, burst = 1

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/v1/tables", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same client from another source port is still limited.
	req2 := httptest.NewRequest("GET", "/v1/tables", nil)
	req2.RemoteAddr = "1.2.3.4:5678"
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.NotEmpty(t, w2.Header().Get("Retry-After"))
	assert.Contains(t, w2.Body.String(), "rate limit exceeded")
}
