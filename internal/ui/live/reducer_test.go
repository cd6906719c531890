package live

import (
	"testing"

	"examctl/internal/lifecycle"
	"examctl/internal/result"
)

// TestMoveCursorScrollsGrid verifies the visible window follows the cursor.
func TestMoveCursorScrollsGrid(t *testing.T) {
	state := Resize(Reduce(NewState(), lifecycle.Snapshot{View: lifecycle.ViewActive, Total: 10}), 3)
	state = MoveCursor(state, 4)
	if state.Cursor != 5 || state.Offset != 3 {
		t.Fatalf("expected cursor 5 offset 3, got %d/%d", state.Cursor, state.Offset)
	}
	state = MoveCursor(state, -4)
	if state.Cursor != 1 || state.Offset != 1 {
		t.Fatalf("expected cursor 1 offset 1, got %d/%d", state.Cursor, state.Offset)
	}
}

// TestMoveCursorClampsToRange verifies the cursor stays on a real question.
func TestMoveCursorClampsToRange(t *testing.T) {
	state := Resize(Reduce(NewState(), lifecycle.Snapshot{View: lifecycle.ViewActive, Total: 4}), 10)
	state = MoveCursor(state, 20)
	if state.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", state.Cursor)
	}
	if state.Offset != 1 {
		t.Fatalf("expected offset 1 when everything fits, got %d", state.Offset)
	}
	state = MoveCursor(state, -20)
	if state.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", state.Cursor)
	}
}

// TestReduceWithoutQuestions verifies an empty exam keeps a sane cursor.
func TestReduceWithoutQuestions(t *testing.T) {
	state := MoveCursor(Reduce(NewState(), lifecycle.Snapshot{View: lifecycle.ViewLoading}), 3)
	if state.Cursor != 1 || state.Offset != 1 {
		t.Fatalf("expected cursor reset, got %d/%d", state.Cursor, state.Offset)
	}
}

// TestReduceClearsNoticeOnViewChange verifies notices belong to one screen.
func TestReduceClearsNoticeOnViewChange(t *testing.T) {
	state := Reduce(NewState(), lifecycle.Snapshot{View: lifecycle.ViewActive, Total: 5})
	state.Notice = "something"
	state = Reduce(state, lifecycle.Snapshot{View: lifecycle.ViewActive, Total: 5, Answered: 1})
	if state.Notice == "" {
		t.Fatalf("expected notice kept within the same view")
	}
	state = Reduce(state, lifecycle.Snapshot{View: lifecycle.ViewResult, Total: 5})
	if state.Notice != "" {
		t.Fatalf("expected notice cleared, got %q", state.Notice)
	}
}

// TestCycleFilter verifies the detail filter rotates.
func TestCycleFilter(t *testing.T) {
	state := NewState()
	seen := []result.Filter{}
	for range 3 {
		state = CycleFilter(state)
		seen = append(seen, state.Filter)
	}
	want := []result.Filter{result.FilterCorrect, result.FilterIncorrect, result.FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}
