package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examctl/internal/exam"
	"examctl/internal/testutil"
	"examctl/internal/validate"
)

// TestValidateTimerDuration verifies the 1-300 minute bounds.
func TestValidateTimerDuration(t *testing.T) {
	dir := t.TempDir()
	pdf := testutil.WritePDF(t, dir, "exam.pdf")
	key := testutil.WriteTextKey(t, dir, "key.txt", testutil.AnswerKey(3))

	cases := []struct {
		name     string
		mode     exam.Mode
		duration int
		wantErr  bool
	}{
		{"timer lower bound", exam.ModeTimer, 1, false},
		{"timer upper bound", exam.ModeTimer, 300, false},
		{"timer missing duration", exam.ModeTimer, 0, true},
		{"timer too long", exam.ModeTimer, 301, true},
		{"timer negative", exam.ModeTimer, -5, true},
		{"stopwatch ignores duration", exam.ModeStopwatch, 0, false},
		{"unknown mode", exam.Mode("relay"), 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Form{Mode: tc.mode, DurationMinutes: tc.duration, ExamPDF: pdf, AnswerKey: key}.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestValidateFileTypes verifies extension and content checks.
func TestValidateFileTypes(t *testing.T) {
	dir := t.TempDir()
	pdf := testutil.WritePDF(t, dir, "exam.pdf")
	pdfKey := testutil.WritePDF(t, dir, "key.pdf")
	textKey := testutil.WriteTextKey(t, dir, "key.txt", testutil.AnswerKey(3))
	fakePDF := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(fakePDF, []byte("just text\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	docx := filepath.Join(dir, "exam.docx")
	if err := os.WriteFile(docx, []byte("PK"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := CheckExamFile(pdf); err != nil {
		t.Fatalf("pdf rejected: %v", err)
	}
	if err := CheckAnswerKeyFile(pdfKey); err != nil {
		t.Fatalf("pdf key rejected: %v", err)
	}
	if err := CheckAnswerKeyFile(textKey); err != nil {
		t.Fatalf("text key rejected: %v", err)
	}
	for _, path := range []string{fakePDF, docx, textKey} {
		if err := CheckExamFile(path); !errors.Is(err, ErrInvalidFileType) {
			t.Fatalf("%s: expected ErrInvalidFileType, got %v", filepath.Base(path), err)
		}
	}
	if err := CheckExamFile(filepath.Join(dir, "missing.pdf")); err == nil || errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected read error for missing file, got %v", err)
	}
}

// TestValidateReportsEveryField verifies issues are collected per field.
func TestValidateReportsEveryField(t *testing.T) {
	err := Form{Mode: exam.ModeTimer}.Validate()
	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"duration", "exam_pdf", "answer_key"} {
		if !verr.Has(field) {
			t.Fatalf("expected issue for %s, got %v", field, verr.Issues)
		}
	}
}

// TestOpenBuildsRequest verifies files are opened and duration only set for timers.
func TestOpenBuildsRequest(t *testing.T) {
	dir := t.TempDir()
	pdf := testutil.WritePDF(t, dir, "exam.pdf")
	key := testutil.WriteTextKey(t, dir, "key.txt", map[string]string{"1": "A", "2": "B"})

	req, closeFn, err := Form{Mode: exam.ModeStopwatch, DurationMinutes: 45, ExamPDF: pdf, AnswerKey: key}.Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()
	if req.DurationMinutes != 0 || req.ExamPDF.Name != "exam.pdf" || req.AnswerKey.Name != "key.txt" {
		t.Fatalf("unexpected request: %+v", req)
	}
	body, err := io.ReadAll(req.AnswerKey.Content)
	if err != nil || !strings.Contains(string(body), "2. B") {
		t.Fatalf("unexpected key content %q: %v", body, err)
	}
}
