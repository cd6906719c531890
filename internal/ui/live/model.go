package live

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"examctl/internal/lifecycle"
	"examctl/internal/report"
	"examctl/internal/result"
)

const barWidth = 40

// Model renders the exam console UI using Bubble Tea.
type Model struct {
	state     State
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	timeBar   progress.Model
	answerBar progress.Model
	table     table.Model

	snapshots <-chan lifecycle.Snapshot
	closed    <-chan struct{}
	actions   chan<- lifecycle.Action

	exportDir string
	noColor   bool
	now       func() time.Time
}

// Options configures the exam UI model.
type Options struct {
	NoColor   bool
	ExportDir string
}

// NewModel constructs a model that renders snapshots and emits actions.
func NewModel(snapshots <-chan lifecycle.Snapshot, closed <-chan struct{}, actions chan<- lifecycle.Action, opts Options) Model {
	t := table.New(
		table.WithColumns(detailColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(defaultGridRows),
	)
	t.SetStyles(tableStyles(opts.NoColor))

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !opts.NoColor {
		spin.Style = lipgloss.NewStyle().Foreground(colorAccent)
	}

	h := help.New()
	if opts.NoColor {
		h.Styles = help.Styles{}
	}

	return Model{
		state:     NewState(),
		keys:      defaultKeyMap(),
		help:      h,
		spinner:   spin,
		timeBar:   newBar(opts.NoColor),
		answerBar: newBar(opts.NoColor),
		table:     t,
		snapshots: snapshots,
		closed:    closed,
		actions:   actions,
		exportDir: opts.ExportDir,
		noColor:   opts.NoColor,
		now:       time.Now,
	}
}

func newBar(noColor bool) progress.Model {
	if noColor {
		return progress.New(progress.WithWidth(barWidth), progress.WithFillCharacters('#', '.'), progress.WithoutPercentage())
	}
	return progress.New(progress.WithWidth(barWidth), progress.WithDefaultGradient())
}

// Init starts the spinner and waits for the first snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots, m.closed), m.spinner.Tick)
}

// Update consumes snapshots, key presses and export results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-10, 3))
		m.state = Resize(m.state, typed.Height-12)
		return m, nil
	case SnapshotMsg:
		m = m.applySnapshot(typed.Snapshot)
		return m, waitForSnapshot(m.snapshots, m.closed)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case exportedMsg:
		if typed.Err != nil {
			m.state.Notice = typed.Format + " export failed: " + typed.Err.Error()
		} else {
			m.state.Notice = "Saved " + typed.Path
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	snap := m.state.Snapshot
	var body string
	switch snap.View {
	case lifecycle.ViewError:
		body = renderFatal(snap, m.noColor)
	case lifecycle.ViewStart:
		body = renderStart(snap, m.spinner.View(), m.noColor)
	case lifecycle.ViewActive:
		body = renderActive(m)
	case lifecycle.ViewResult:
		body = renderResult(snap, m.state.Filter, m.table.View(), m.noColor)
	case lifecycle.ViewFinished:
		body = renderFinished(snap, m.noColor)
	default:
		body = renderLoading(m.spinner.View())
	}
	sections := []string{renderHeader(snap, m.noColor), "", body}
	if snap.Error != "" {
		sections = append(sections, "", stylize(snap.Error, m.noColor, colorCritical))
	}
	if m.state.Notice != "" {
		sections = append(sections, "", stylize(m.state.Notice, m.noColor, colorMuted))
	}
	sections = append(sections, "", m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHelp() string {
	if m.state.ShowHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.bindingsFor(m.state.Snapshot))
}

func (m Model) applySnapshot(snap lifecycle.Snapshot) Model {
	hadResult := m.state.Snapshot.Result != nil
	m.state = Reduce(m.state, snap)
	if snap.Result != nil && !hadResult {
		m.table.SetRows(rowsForResult(snap.Result, m.state.Filter))
		m.table.GotoTop()
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.send(lifecycle.Quit())
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.state.ShowHelp = !m.state.ShowHelp
		return m, nil
	}
	snap := m.state.Snapshot
	switch snap.View {
	case lifecycle.ViewError:
		if key.Matches(msg, m.keys.Reload) {
			m.send(lifecycle.Reload())
		}
	case lifecycle.ViewStart:
		if key.Matches(msg, m.keys.Start) && !snap.Starting {
			m.send(lifecycle.Start())
		}
	case lifecycle.ViewActive:
		return m.handleActiveKey(msg)
	case lifecycle.ViewResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m Model) handleActiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.state.Snapshot
	if snap.Submitting {
		return m, nil
	}
	if snap.Confirming {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.send(lifecycle.ConfirmSubmit())
		case key.Matches(msg, m.keys.Cancel):
			m.send(lifecycle.CancelSubmit())
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state = MoveCursor(m.state, -1)
	case key.Matches(msg, m.keys.Down):
		m.state = MoveCursor(m.state, 1)
	case key.Matches(msg, m.keys.PageUp):
		m.state = MoveCursor(m.state, -m.state.Rows)
	case key.Matches(msg, m.keys.PageDown):
		m.state = MoveCursor(m.state, m.state.Rows)
	case key.Matches(msg, m.keys.Choose):
		if option, ok := optionForKey(msg.String()); ok {
			m.send(lifecycle.Select(m.state.Cursor, option))
			m.state = MoveCursor(m.state, 1)
		}
	case key.Matches(msg, m.keys.Clear):
		m.send(lifecycle.Clear(m.state.Cursor))
	case key.Matches(msg, m.keys.Submit):
		if snap.CanSubmit {
			m.send(lifecycle.RequestSubmit())
		}
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.state.Snapshot
	switch {
	case key.Matches(msg, m.keys.Filter):
		m.state = CycleFilter(m.state)
		m.table.SetRows(rowsForResult(snap.Result, m.state.Filter))
		m.table.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.ExportJSON):
		return m, exportJSON(m.exportDir, m.document())
	case key.Matches(msg, m.keys.ExportHTML):
		return m, exportHTML(m.exportDir, m.document(), m.state.Filter)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) document() result.Document {
	snap := m.state.Snapshot
	return result.NewDocument(*snap.Result, snap.Exam.Mode, m.now())
}

// send enqueues an action without blocking the UI.
func (m Model) send(action lifecycle.Action) {
	if m.actions == nil {
		return
	}
	select {
	case m.actions <- action:
	default:
	}
}

func exportJSON(dir string, doc result.Document) tea.Cmd {
	return func() tea.Msg {
		path, err := result.WriteFile(dir, doc)
		return exportedMsg{Format: "json", Path: path, Err: err}
	}
}

func exportHTML(dir string, doc result.Document, filter result.Filter) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{Format: "html", Err: fmt.Errorf("create export dir: %w", err)}
		}
		path, err := report.WriteHTML(context.Background(), dir, doc, filter)
		return exportedMsg{Format: "html", Path: path, Err: err}
	}
}
