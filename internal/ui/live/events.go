package live

import (
	tea "github.com/charmbracelet/bubbletea"

	"examctl/internal/lifecycle"
)

// SnapshotMsg wraps a controller snapshot for Bubble Tea.
type SnapshotMsg struct {
	Snapshot lifecycle.Snapshot
}

// exportedMsg reports the outcome of a result export.
type exportedMsg struct {
	Format string
	Path   string
	Err    error
}

// waitForSnapshot blocks until the controller publishes a snapshot or the UI
// is closed.
func waitForSnapshot(snapshots <-chan lifecycle.Snapshot, closed <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if snapshots == nil {
			return nil
		}
		select {
		case snap := <-snapshots:
			return SnapshotMsg{Snapshot: snap}
		case <-closed:
			return tea.Quit()
		}
	}
}
