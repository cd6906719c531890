package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"examctl/internal/lifecycle"
)

// actionBuffer bounds key presses queued for the controller.
const actionBuffer = 64

// Controller runs the exam UI and implements lifecycle.Observer.
type Controller struct {
	snapshots *lifecycle.Latest
	actions   chan lifecycle.Action
	program   *tea.Program
	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Start launches the exam UI on stdout. Snapshots published through
// OnSnapshot are rendered; user input is delivered on Actions.
func Start(stdin io.Reader, stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	controller := &Controller{
		snapshots: lifecycle.NewLatest(),
		actions:   make(chan lifecycle.Action, actionBuffer),
		closed:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	model := NewModel(controller.snapshots.C(), controller.closed, controller.actions, opts)
	programOpts := []tea.ProgramOption{tea.WithOutput(stdout), tea.WithAltScreen()}
	if stdin != nil {
		programOpts = append(programOpts, tea.WithInput(stdin))
	}
	controller.program = tea.NewProgram(model, programOpts...)
	go func() {
		_, controller.err = controller.program.Run()
		close(controller.done)
	}()
	return controller
}

// OnSnapshot forwards the latest controller state to the UI.
func (c *Controller) OnSnapshot(snap lifecycle.Snapshot) {
	if c == nil {
		return
	}
	c.snapshots.OnSnapshot(snap)
}

// Actions returns the user's actions for the lifecycle controller.
func (c *Controller) Actions() <-chan lifecycle.Action {
	return c.actions
}

// Done is closed once the UI has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// Wait blocks until the UI has exited and returns the program error.
func (c *Controller) Wait() error {
	if c == nil {
		return nil
	}
	<-c.done
	return c.err
}
