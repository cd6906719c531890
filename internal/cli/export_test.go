package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"examctl/internal/exam"
	"examctl/internal/result"
)

const exportedID = "0b7e8f6a-3c1d-4f2a-9b5e-7d6c5a4b3f21"

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	doc := result.NewDocument(exam.Result{
		ExamID:         exportedID,
		TotalQuestions: 2,
		CorrectAnswers: 1,
		WrongAnswers:   1,
		Score:          50,
		TimeTaken:      exam.MillisOf(3 * time.Minute),
		Details: []exam.QuestionResult{
			{QuestionNumber: "1", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
			{QuestionNumber: "2", UserAnswer: "A", CorrectAnswer: "B"},
		},
	}, exam.ModeTimer, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	path, err := result.WriteFile(dir, doc)
	if err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

// TestExportHTMLNextToSource verifies the default HTML target.
func TestExportHTMLNextToSource(t *testing.T) {
	dir := t.TempDir()
	source := writeExport(t, dir)

	out, errOut, code := runCLI(t, "", "export", "--filter", "incorrect", source)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	htmlPath := filepath.Join(dir, "exam-result-"+exportedID+".html")
	if !strings.Contains(out, htmlPath) {
		t.Fatalf("expected report path in output, got %q", out)
	}
	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.Contains(string(html), "Questions (incorrect, 1)") {
		t.Fatalf("expected filtered details")
	}
}

// TestExportJSONByExamID verifies lookup through the configured export dir.
func TestExportJSONByExamID(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir)
	t.Setenv("EXAM_EXPORT_DIR", dir)

	out, errOut, code := runCLI(t, "", "export", "--format", "json", exportedID)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	doc, err := result.ParseDocument([]byte(out))
	if err != nil {
		t.Fatalf("parse stdout: %v", err)
	}
	if doc.ExamID != exportedID || doc.TimeTaken != "3m 0s" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

// TestExportRejectsBadFlags verifies usage errors.
func TestExportRejectsBadFlags(t *testing.T) {
	if _, _, code := runCLI(t, "", "export"); code != ExitUsage {
		t.Fatalf("expected usage exit without ref, got %d", code)
	}
	if _, _, code := runCLI(t, "", "export", "--format", "pdf", "x.json"); code != ExitUsage {
		t.Fatalf("expected usage exit for format, got %d", code)
	}
	if _, _, code := runCLI(t, "", "export", "--filter", "some", "x.json"); code != ExitUsage {
		t.Fatalf("expected usage exit for filter, got %d", code)
	}
}
