package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://api.perplexity.ai/chat/completions"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different host has its own bucket
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "https://example.com", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}
}

func TestLimiter_WaitWithDelay_Cancelled(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.WaitWithDelay(ctx, "https://example.com", time.Second)
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "https://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of one is spent
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Other hosts are unaffected
	if !limiter.Allow("https://other.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetHostRate("slow.example.com", 1, 1)

	url := "https://slow.example.com/page"
	if !limiter.Allow(url) {
		t.Error("expected first request to be allowed")
	}
	if limiter.Allow(url) {
		t.Error("expected second request to be denied at custom rate")
	}
}
