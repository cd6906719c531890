package live

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"examctl/internal/exam"
	"examctl/internal/lifecycle"
	"examctl/internal/result"
	"examctl/internal/testutil"
)

func newTestModel(t *testing.T) (Model, chan lifecycle.Action) {
	t.Helper()
	actions := make(chan lifecycle.Action, 8)
	m := NewModel(nil, nil, actions, Options{NoColor: true, ExportDir: t.TempDir()})
	m.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return m, actions
}

func feed(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func press(keys string) tea.KeyMsg {
	switch keys {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

func nextAction(t *testing.T, actions <-chan lifecycle.Action) lifecycle.Action {
	t.Helper()
	select {
	case action := <-actions:
		return action
	default:
		t.Fatalf("expected an action")
		return lifecycle.Action{}
	}
}

func expectNoAction(t *testing.T, actions <-chan lifecycle.Action) {
	t.Helper()
	select {
	case action := <-actions:
		t.Fatalf("unexpected action %s", action.Kind)
	default:
	}
}

func activeSnapshot(mode exam.Mode, total int) lifecycle.Snapshot {
	return lifecycle.Snapshot{
		View:      lifecycle.ViewActive,
		Exam:      exam.Exam{ID: "exam-1", Mode: mode},
		Status:    exam.StatusActive,
		Answers:   exam.Answers{},
		Total:     total,
		CanSubmit: mode == exam.ModeStopwatch,
	}
}

func resultSnapshot() lifecycle.Snapshot {
	return lifecycle.Snapshot{
		View:   lifecycle.ViewResult,
		Exam:   exam.Exam{ID: "exam-1", Mode: exam.ModeStopwatch},
		Status: exam.StatusCompleted,
		Total:  3,
		Result: &exam.Result{
			ExamID:         "exam-1",
			TotalQuestions: 3,
			CorrectAnswers: 2,
			WrongAnswers:   1,
			Score:          66.7,
			TimeTaken:      exam.Millis(125000),
			Details: []exam.QuestionResult{
				{QuestionNumber: "3", UserAnswer: "", CorrectAnswer: "C", IsCorrect: false},
				{QuestionNumber: "1", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
				{QuestionNumber: "2", UserAnswer: "B", CorrectAnswer: "B", IsCorrect: true},
			},
		},
	}
}

// TestAnswerKeysSendSelections verifies option keys select for the focused question.
func TestAnswerKeysSendSelections(t *testing.T) {
	m, actions := newTestModel(t)
	m, _ = feed(m, SnapshotMsg{Snapshot: activeSnapshot(exam.ModeTimer, 5)})

	m, _ = feed(m, press("b"))
	if got := nextAction(t, actions); got != lifecycle.Select(1, "B") {
		t.Fatalf("expected select 1/B, got %+v", got)
	}
	m, _ = feed(m, press("3"))
	if got := nextAction(t, actions); got != lifecycle.Select(2, "C") {
		t.Fatalf("expected select 2/C, got %+v", got)
	}
	m, _ = feed(m, press("x"))
	if got := nextAction(t, actions); got != lifecycle.Clear(3) {
		t.Fatalf("expected clear 3, got %+v", got)
	}
	if m.state.Cursor != 3 {
		t.Fatalf("expected cursor on question 3, got %d", m.state.Cursor)
	}
}

// TestSubmitKeyRespectsGate verifies submit is only requested when allowed.
func TestSubmitKeyRespectsGate(t *testing.T) {
	m, actions := newTestModel(t)
	m, _ = feed(m, SnapshotMsg{Snapshot: activeSnapshot(exam.ModeTimer, 5)}, press("s"))
	expectNoAction(t, actions)

	m, _ = feed(m, SnapshotMsg{Snapshot: activeSnapshot(exam.ModeStopwatch, 5)}, press("s"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionRequestSubmit {
		t.Fatalf("expected submit request, got %s", got.Kind)
	}
	if !strings.Contains(m.View(), "submit") {
		t.Fatalf("expected submit binding in help:\n%s", m.View())
	}
}

// TestConfirmModalKeys verifies only confirm and cancel apply while confirming.
func TestConfirmModalKeys(t *testing.T) {
	m, actions := newTestModel(t)
	snap := activeSnapshot(exam.ModeStopwatch, 50)
	snap.Confirming = true
	snap.Answered = 3
	m, _ = feed(m, SnapshotMsg{Snapshot: snap}, press("b"))
	expectNoAction(t, actions)
	if !strings.Contains(m.View(), "Submit 3 of 50 answers?") {
		t.Fatalf("expected confirm modal:\n%s", m.View())
	}

	m, _ = feed(m, press("n"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionCancelSubmit {
		t.Fatalf("expected cancel, got %s", got.Kind)
	}
	_, _ = feed(m, press("y"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionConfirmSubmit {
		t.Fatalf("expected confirm, got %s", got.Kind)
	}
}

// TestStartAndReloadKeys verifies screen-specific bindings.
func TestStartAndReloadKeys(t *testing.T) {
	m, actions := newTestModel(t)
	start := lifecycle.Snapshot{View: lifecycle.ViewStart, Exam: exam.Exam{ID: "exam-1", Mode: exam.ModeTimer}, Status: exam.StatusPending, Total: 50}
	m, _ = feed(m, SnapshotMsg{Snapshot: start}, press("b"))
	expectNoAction(t, actions)
	m, _ = feed(m, press("enter"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionStart {
		t.Fatalf("expected start, got %s", got.Kind)
	}

	_, _ = feed(m, SnapshotMsg{Snapshot: lifecycle.Snapshot{View: lifecycle.ViewError, Fatal: "exam not found"}}, press("r"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionReload {
		t.Fatalf("expected reload, got %s", got.Kind)
	}
}

// TestQuitStopsControllerAndProgram verifies quit reaches both sides.
func TestQuitStopsControllerAndProgram(t *testing.T) {
	m, actions := newTestModel(t)
	_, cmd := feed(m, SnapshotMsg{Snapshot: activeSnapshot(exam.ModeTimer, 5)}, press("q"))
	if got := nextAction(t, actions); got.Kind != lifecycle.ActionQuit {
		t.Fatalf("expected quit, got %s", got.Kind)
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

// TestViewRendersScreens verifies the main screen content.
func TestViewRendersScreens(t *testing.T) {
	m, _ := newTestModel(t)
	if view := m.View(); !strings.Contains(view, "Loading exam") {
		t.Fatalf("expected loading screen:\n%s", view)
	}

	start := lifecycle.Snapshot{View: lifecycle.ViewStart, Exam: exam.Exam{ID: "exam-1", Mode: exam.ModeTimer, Duration: durationPtr(60 * time.Minute)}, Status: exam.StatusPending, Total: 50}
	m, _ = feed(m, SnapshotMsg{Snapshot: start})
	if view := m.View(); !strings.Contains(view, "Timer (60 minutes)") || !strings.Contains(view, "Questions: 50") {
		t.Fatalf("expected start screen:\n%s", view)
	}

	active := activeSnapshot(exam.ModeTimer, 5)
	active.Remaining = 45 * time.Second
	active.Critical = true
	active.Answers = exam.Answers{"2": "D"}
	active.Answered = 1
	m, _ = feed(m, SnapshotMsg{Snapshot: active})
	view := m.View()
	for _, want := range []string{"Remaining 00:45", "less than a minute left", "Answered  1/5", "[D]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in active screen:\n%s", want, view)
		}
	}

	stopwatch := activeSnapshot(exam.ModeStopwatch, 5)
	stopwatch.Elapsed = 75 * time.Second
	m, _ = feed(m, SnapshotMsg{Snapshot: stopwatch})
	if view := m.View(); !strings.Contains(view, "Elapsed   01:15") {
		t.Fatalf("expected stopwatch line:\n%s", view)
	}

	finished := lifecycle.Snapshot{View: lifecycle.ViewFinished, Exam: exam.Exam{ID: "exam-1"}, Status: exam.StatusExpired, AutoSubmitted: true}
	m, _ = feed(m, SnapshotMsg{Snapshot: finished})
	if view := m.View(); !strings.Contains(view, "could not be submitted") || !strings.Contains(view, "EXPIRED") {
		t.Fatalf("expected finished screen:\n%s", view)
	}
}

// TestResultScreenFilters verifies the detail table follows the filter.
func TestResultScreenFilters(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = feed(m, SnapshotMsg{Snapshot: resultSnapshot()})
	view := m.View()
	for _, want := range []string{"66.7%", "Correct 2 | Wrong 1 | Total 3 | Time 2m 5s", "Showing all questions"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in result screen:\n%s", want, view)
		}
	}
	if rows := m.table.Rows(); len(rows) != 3 || rows[0][0] != "1" || rows[2][1] != "-" {
		t.Fatalf("unexpected rows %v", rows)
	}

	m, _ = feed(m, press("f"))
	if m.state.Filter != result.FilterCorrect || len(m.table.Rows()) != 2 {
		t.Fatalf("expected 2 correct rows, got %s/%d", m.state.Filter, len(m.table.Rows()))
	}
	m, _ = feed(m, press("f"))
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][0] != "3" {
		t.Fatalf("expected the incorrect row, got %v", rows)
	}
}

// TestExportKeysWriteFiles verifies JSON and HTML exports land in the export dir.
func TestExportKeysWriteFiles(t *testing.T) {
	testutil.RunWithTimeout(t, 2*time.Second, func() {
		m, _ := newTestModel(t)
		m, _ = feed(m, SnapshotMsg{Snapshot: resultSnapshot()})

		m, cmd := feed(m, press("o"))
		msg := cmd()
		exported, ok := msg.(exportedMsg)
		if !ok || exported.Err != nil {
			t.Fatalf("expected json export, got %#v", msg)
		}
		if filepath.Base(exported.Path) != "exam-result-exam-1.json" {
			t.Fatalf("unexpected export path %s", exported.Path)
		}
		doc, err := result.ReadFile(exported.Path)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		if doc.CorrectAnswers != 2 || doc.ExamMode != exam.ModeStopwatch {
			t.Fatalf("unexpected document %+v", doc)
		}
		m, _ = feed(m, exported)
		if !strings.Contains(m.View(), "Saved "+exported.Path) {
			t.Fatalf("expected saved notice:\n%s", m.View())
		}

		_, cmd = feed(m, press("w"))
		exported = cmd().(exportedMsg)
		if exported.Err != nil {
			t.Fatalf("html export: %v", exported.Err)
		}
		html, err := os.ReadFile(exported.Path)
		if err != nil {
			t.Fatalf("read html: %v", err)
		}
		if !strings.Contains(string(html), "exam-1") {
			t.Fatalf("expected exam id in html")
		}
	})
}

func durationPtr(d time.Duration) *exam.Millis {
	ms := exam.MillisOf(d)
	return &ms
}
