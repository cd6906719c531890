package live

import (
	"examctl/internal/lifecycle"
	"examctl/internal/result"
)

// State captures the UI state layered over the latest controller snapshot.
type State struct {
	Snapshot lifecycle.Snapshot
	// Cursor is the focused question number, starting at 1.
	Cursor int
	// Offset is the first question shown in the answer grid.
	Offset int
	// Rows is the number of grid rows that fit on screen.
	Rows     int
	Filter   result.Filter
	Notice   string
	ShowHelp bool
}

// NewState returns the state shown before the first snapshot arrives.
func NewState() State {
	return State{
		Cursor: 1,
		Offset: 1,
		Rows:   defaultGridRows,
		Filter: result.FilterAll,
	}
}

const defaultGridRows = 10
