package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLocalRateLimiterAllow(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 10
	config.BurstSize = 3

	rl := NewLocalRateLimiter(config)
	defer rl.Stop()

	// Burst of 3 should pass, the fourth should be rejected
	for i := 0; i < 3; i++ {
		if !rl.Allow("client-1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if rl.Allow("client-1") {
		t.Error("request beyond burst should be rejected")
	}

	// A different key has its own bucket
	if !rl.Allow("client-2") {
		t.Error("unrelated client should not be throttled")
	}

	allowed, rejected := rl.GetStats()
	if allowed != 4 {
		t.Errorf("expected 4 allowed, got %d", allowed)
	}
	if rejected != 1 {
		t.Errorf("expected 1 rejected, got %d", rejected)
	}
}

func TestLocalRateLimiterRefill(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 100
	config.BurstSize = 1

	rl := NewLocalRateLimiter(config)
	defer rl.Stop()

	if !rl.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("client") {
		t.Fatal("bucket should be empty immediately after")
	}

	// At 100 tokens/s a token is back within ~10ms
	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("client") {
		t.Error("bucket should have refilled")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 1
	config.BurstSize = 2

	router := gin.New()
	router.Use(RateLimiter(config))
	router.POST("/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	doRequest := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:52000"
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		w := doRequest()
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
		if w.Header().Get("X-RateLimit-Limit") == "" {
			t.Error("expected X-RateLimit-Limit header")
		}
	}

	w := doRequest()
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on throttled response")
	}
	if !contains(w.Body.String(), "TOO_MANY_REQUESTS") {
		t.Errorf("expected TOO_MANY_REQUESTS code in body, got %s", w.Body.String())
	}
}

func TestLoginRateLimitConfig(t *testing.T) {
	cfg := LoginRateLimitConfig()
	if cfg.RequestsPerSecond != 5 {
		t.Errorf("expected 5 requests per second, got %d", cfg.RequestsPerSecond)
	}
	if cfg.BurstSize != 10 {
		t.Errorf("expected burst of 10, got %d", cfg.BurstSize)
	}
	if cfg.KeyPrefix != "ratelimit:auth:" {
		t.Errorf("unexpected key prefix %q", cfg.KeyPrefix)
	}
}
