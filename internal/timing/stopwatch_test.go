package timing

import (
	"testing"
	"time"
)

// TestStopwatchElapsed verifies elapsed = now - start with no upper bound.
func TestStopwatchElapsed(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStopwatch(&start)
	if got := s.Tick(start.Add(90 * time.Second)); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
	if got := s.Tick(start.Add(30 * time.Hour)); got != 30*time.Hour {
		t.Fatalf("expected 30h, got %s", got)
	}
}

// TestStopwatchClampsSkew verifies a lagging local clock never yields negative time.
func TestStopwatchClampsSkew(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewStopwatch(&start)
	if got := s.Tick(start.Add(-400 * time.Millisecond)); got != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
}

// TestStopwatchIdle verifies a stopwatch without a start stays at zero.
func TestStopwatchIdle(t *testing.T) {
	s := NewStopwatch(nil)
	if !s.Idle() {
		t.Fatalf("expected idle")
	}
	if got := s.Tick(time.Now()); got != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
}
