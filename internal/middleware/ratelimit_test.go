package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    3,
		window:   time.Minute,
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}
}

func TestRateLimiterTracksIPsIndependently(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    1,
		window:   time.Minute,
	}

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first IP should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP should not share the first IP's count")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first IP should now be over its limit")
	}
}

func TestRateLimiterExpiresOldRequests(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    1,
		window:   time.Minute,
	}

	// Seed a request that is already outside the window.
	rl.requests["10.0.0.1"] = []time.Time{time.Now().Add(-2 * time.Minute)}

	if !rl.Allow("10.0.0.1") {
		t.Error("request after the window expired should be allowed")
	}
}
