package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/forgo/community/api/internal/model"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(rps float64, burst int) (*RateLimiter, *stepClock) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(RateLimitConfig{RPS: rps, Burst: burst, Now: clock.Now, Cleanup: time.Hour})
	return rl, clock
}

// ============================================================================
// NewRateLimiter Tests (Configuration)
// ============================================================================

func TestNewRateLimiter_DefaultConfig(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})
	defer rl.Stop()

	if rl.rps != 10 {
		t.Errorf("expected default rps 10, got %v", rl.rps)
	}
	if rl.burst != 20 {
		t.Errorf("expected default burst 20, got %d", rl.burst)
	}
	if rl.idle != 10*time.Minute {
		t.Errorf("expected default idle 10m, got %v", rl.idle)
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimitConfig{})
	rl.Stop()
	rl.Stop()
}

// ============================================================================
// Allow() Tests
// ============================================================================

func TestAllow_BurstThenReject(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(1, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("client"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, wait := rl.Allow("client")
	if ok {
		t.Fatal("fourth request should be rejected")
	}
	if wait <= 0 || wait > time.Second {
		t.Errorf("expected wait in (0, 1s], got %v", wait)
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(1, 1)
	defer rl.Stop()

	if ok, _ := rl.Allow("client"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("client"); ok {
		t.Fatal("second request should be rejected")
	}

	clock.Advance(time.Second)
	if ok, _ := rl.Allow("client"); !ok {
		t.Error("request after refill should be allowed")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(1, 1)
	defer rl.Stop()

	_, _ = rl.Allow("a")
	if ok, _ := rl.Allow("b"); !ok {
		t.Error("a different key should have its own bucket")
	}
}

func TestCleanupExpired_DropsIdleBuckets(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(1, 1)
	defer rl.Stop()

	_, _ = rl.Allow("old")
	clock.Advance(time.Hour)
	_, _ = rl.Allow("fresh")
	rl.cleanupExpired()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.limiters["old"]; ok {
		t.Error("expected idle bucket to be removed")
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Error("expected fresh bucket to remain")
	}
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimit_Returns429WithRetryAfter(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(1, 1)
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	req.RemoteAddr = "198.51.100.7:5000"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "1" {
		t.Errorf("expected limit header 1, got %q", rr.Header().Get("X-RateLimit-Limit"))
	}

	// Same host, different port shares the bucket
	req.RemoteAddr = "198.51.100.7:5001"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "1" {
		t.Errorf("expected Retry-After 1, got %q", rr.Header().Get("Retry-After"))
	}
	if body := decodeError(t, rr); body.Success {
		t.Error("expected success false")
	}
}

func TestRateLimit_KeysByHostEvenWithUser(t *testing.T) {
	t.Parallel()
	rl, _ := newTestLimiter(1, 1)
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req = req.WithContext(WithUser(req.Context(), &model.User{ID: userID}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("u1"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := send("u2"); code != http.StatusTooManyRequests {
		t.Errorf("expected a second account on the same host to share the bucket, got %d", code)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	if got := clientIP(req); got != "2001:db8::1" {
		t.Errorf("expected bare IPv6 host, got %q", got)
	}
	req.RemoteAddr = "unix"
	if got := clientIP(req); got != "unix" {
		t.Errorf("expected raw addr fallback, got %q", got)
	}
}
