package live

import (
	"examctl/internal/lifecycle"
)

// Reduce adopts a controller snapshot and keeps the cursor inside the
// question range.
func Reduce(state State, snap lifecycle.Snapshot) State {
	if snap.View != state.Snapshot.View {
		state.Notice = ""
	}
	state.Snapshot = snap
	return clampCursor(state)
}

// MoveCursor shifts the focused question by delta, scrolling the grid when
// the cursor leaves the visible window.
func MoveCursor(state State, delta int) State {
	state.Cursor += delta
	return clampCursor(state)
}

// Resize sets how many grid rows fit on screen.
func Resize(state State, rows int) State {
	state.Rows = max(rows, 1)
	return clampCursor(state)
}

// CycleFilter advances the result detail filter.
func CycleFilter(state State) State {
	state.Filter = state.Filter.Next()
	return state
}

// clampCursor keeps Cursor within 1..Total and Offset such that the cursor
// is visible.
func clampCursor(state State) State {
	total := state.Snapshot.Total
	if state.Rows <= 0 {
		state.Rows = defaultGridRows
	}
	if total <= 0 {
		state.Cursor, state.Offset = 1, 1
		return state
	}
	state.Cursor = min(max(state.Cursor, 1), total)
	if state.Offset < 1 {
		state.Offset = 1
	}
	if state.Cursor < state.Offset {
		state.Offset = state.Cursor
	}
	if state.Cursor >= state.Offset+state.Rows {
		state.Offset = state.Cursor - state.Rows + 1
	}
	lastOffset := max(total-state.Rows+1, 1)
	state.Offset = min(state.Offset, lastOffset)
	return state
}
