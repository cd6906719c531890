package plain

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"examctl/internal/answers"
	"examctl/internal/exam"
	"examctl/internal/lifecycle"
	"examctl/internal/result"
	"examctl/internal/testutil"
)

// TestParseCommand verifies line parsing into actions.
func TestParseCommand(t *testing.T) {
	cases := []struct {
		line string
		want lifecycle.Action
	}{
		{line: "start", want: lifecycle.Start()},
		{line: "3 b", want: lifecycle.Select(3, "B")},
		{line: " 12   E ", want: lifecycle.Select(12, "E")},
		{line: "clear 4", want: lifecycle.Clear(4)},
		{line: "submit", want: lifecycle.RequestSubmit()},
		{line: "yes", want: lifecycle.ConfirmSubmit()},
		{line: "no", want: lifecycle.CancelSubmit()},
		{line: "reload", want: lifecycle.Reload()},
		{line: "quit", want: lifecycle.Quit()},
	}
	for _, tc := range cases {
		cmd, err := ParseCommand(tc.line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.line, err)
		}
		if cmd.Action == nil || *cmd.Action != tc.want {
			t.Fatalf("%q: expected %+v, got %+v", tc.line, tc.want, cmd.Action)
		}
	}
}

// TestParseCommandRejectsBadInput verifies invalid lines map to sentinel errors.
func TestParseCommandRejectsBadInput(t *testing.T) {
	if _, err := ParseCommand("3 z"); !errors.Is(err, answers.ErrInvalidOption) {
		t.Fatalf("expected invalid option, got %v", err)
	}
	if _, err := ParseCommand("0 a"); !errors.Is(err, answers.ErrQuestionOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := ParseCommand("dance"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown command, got %v", err)
	}
	if _, err := ParseCommand("export pdf"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown command for export format, got %v", err)
	}
	cmd, err := ParseCommand("export")
	if err != nil || cmd.Export != "json" {
		t.Fatalf("expected json export default, got %+v %v", cmd, err)
	}
}

// TestOnSnapshotPrintsChanges verifies only transitions are printed.
func TestOnSnapshotPrintsChanges(t *testing.T) {
	var out bytes.Buffer
	d := New(&out, Options{})
	active := lifecycle.Snapshot{
		View:   lifecycle.ViewActive,
		Exam:   exam.Exam{ID: "exam-1", Mode: exam.ModeTimer},
		Status: exam.StatusActive,
		Total:  50,
	}
	d.OnSnapshot(active)
	d.OnSnapshot(active)
	active.Answered = 1
	d.OnSnapshot(active)
	active.Warning = true
	active.Remaining = 4*time.Minute + 59*time.Second
	d.OnSnapshot(active)
	active.Error = "exam is not active"
	d.OnSnapshot(active)

	got := out.String()
	if strings.Count(got, "exam started") != 1 {
		t.Fatalf("expected one start banner:\n%s", got)
	}
	for _, want := range []string{"answered 1/50", "warning: 04:59 remaining", "error: exam is not active"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

// TestReadActionsStopsAtQuit verifies lines are forwarded in order.
func TestReadActionsStopsAtQuit(t *testing.T) {
	var out bytes.Buffer
	d := New(&out, Options{})
	actions := make(chan lifecycle.Action, 8)
	in := strings.NewReader("start\nbogus\n1 a\nquit\n2 b\n")
	if err := d.ReadActions(testutil.Context(t, time.Second), in, actions); err != nil {
		t.Fatalf("read actions: %v", err)
	}
	var got []lifecycle.Action
	for action := range actions {
		got = append(got, action)
	}
	want := []lifecycle.Action{lifecycle.Start(), lifecycle.Select(1, "A"), lifecycle.Quit()}
	if len(got) != len(want) {
		t.Fatalf("expected %d actions, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected parse error printed:\n%s", out.String())
	}
}

// TestExportCommandWritesResult verifies export uses the latest result snapshot.
func TestExportCommandWritesResult(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	d := New(&out, Options{ExportDir: dir, Now: func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }})
	actions := make(chan lifecycle.Action, 1)
	if err := d.ReadActions(context.Background(), strings.NewReader("export\n"), actions); err != nil {
		t.Fatalf("read actions: %v", err)
	}
	if !strings.Contains(out.String(), "no result to export") {
		t.Fatalf("expected missing result error:\n%s", out.String())
	}

	out.Reset()
	d.OnSnapshot(lifecycle.Snapshot{
		View:   lifecycle.ViewResult,
		Exam:   exam.Exam{ID: "exam-1", Mode: exam.ModeStopwatch},
		Status: exam.StatusCompleted,
		Result: &exam.Result{ExamID: "exam-1", TotalQuestions: 2, CorrectAnswers: 1, WrongAnswers: 1, Score: 50,
			Details: []exam.QuestionResult{
				{QuestionNumber: "2", UserAnswer: "", CorrectAnswer: "B"},
				{QuestionNumber: "1", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
			}},
	})
	if !strings.Contains(out.String(), "score 50.0%") || !strings.Contains(out.String(), "   2  -  B  wrong") {
		t.Fatalf("expected result summary:\n%s", out.String())
	}

	actions = make(chan lifecycle.Action, 1)
	if err := d.ReadActions(context.Background(), strings.NewReader("export json\nexport html\n"), actions); err != nil {
		t.Fatalf("read actions: %v", err)
	}
	doc, err := result.ReadFile(dir + "/" + result.FileName("exam-1"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if doc.Score != 50 {
		t.Fatalf("unexpected score %v", doc.Score)
	}
	if strings.Count(out.String(), "saved ") != 2 {
		t.Fatalf("expected two saved lines:\n%s", out.String())
	}
}
