package answers

import (
	"errors"
	"testing"
)

// TestSelectOverwrites verifies a second choice replaces the first.
func TestSelectOverwrites(t *testing.T) {
	s := NewSet(10)
	if changed, err := s.Select(4, "B"); err != nil || !changed {
		t.Fatalf("expected change, got changed=%v err=%v", changed, err)
	}
	if changed, err := s.Select(4, "d"); err != nil || !changed {
		t.Fatalf("expected change, got changed=%v err=%v", changed, err)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || snap["4"] != "D" {
		t.Fatalf("expected single entry 4=D, got %v", snap)
	}
}

// TestSelectSameOptionIsNoop verifies reselecting does not report a change.
func TestSelectSameOptionIsNoop(t *testing.T) {
	s := NewSet(10)
	_, _ = s.Select(1, "A")
	changed, err := s.Select(1, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
}

// TestSelectRejectsInvalidInput verifies option and range validation.
func TestSelectRejectsInvalidInput(t *testing.T) {
	s := NewSet(5)
	if _, err := s.Select(1, "F"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if _, err := s.Select(0, "A"); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange, got %v", err)
	}
	if _, err := s.Select(6, "A"); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no entries after rejected input")
	}
}

// TestClear verifies answers can be removed.
func TestClear(t *testing.T) {
	s := NewSet(5)
	_, _ = s.Select(2, "C")
	if !s.Clear(2) {
		t.Fatalf("expected clear to report removal")
	}
	if s.Clear(2) {
		t.Fatalf("expected second clear to be a no-op")
	}
	if s.Get(2) != "" {
		t.Fatalf("expected empty answer")
	}
}

// TestAnsweredCountIgnoresBlank verifies blank values are not counted.
func TestAnsweredCountIgnoresBlank(t *testing.T) {
	got := AnsweredCount(map[string]string{"1": "A", "2": "", "3": "C", "4": "  "})
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

// TestSnapshotIsCopy verifies snapshots are detached from the set.
func TestSnapshotIsCopy(t *testing.T) {
	s := NewSet(5)
	_, _ = s.Select(1, "A")
	snap := s.Snapshot()
	snap["1"] = "E"
	if s.Get(1) != "A" {
		t.Fatalf("snapshot mutation leaked into set")
	}
}
