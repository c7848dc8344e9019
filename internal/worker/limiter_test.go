package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("openai") {
			t.Errorf("Call %d within burst should be allowed", i+1)
		}
	}
	if l.Allow("openai") {
		t.Error("Call past the burst should be denied")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("openai") {
		t.Error("First call for openai should be allowed")
	}
	if !l.Allow("ollama") {
		t.Error("First call for ollama should be allowed despite openai's spent burst")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetRate("openai", 1000, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow("openai") {
			t.Errorf("Call %d within the custom burst should be allowed", i+1)
		}
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("openai") // spend the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "openai"); err == nil {
		t.Error("Expected Wait to fail when the context deadline passes first")
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(5, 0)

	// Zero burst falls back to the default rather than blocking forever.
	if !l.Allow("openai") {
		t.Error("Expected default burst to allow the first call")
	}
}
