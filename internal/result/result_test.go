package result

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"examctl/internal/exam"
)

// TestTierFor verifies tier boundaries.
func TestTierFor(t *testing.T) {
	cases := []struct {
		score float64
		emoji string
		color string
	}{
		{100, "🏆", ColorGood},
		{90, "🏆", ColorGood},
		{89.9, "🎉", ColorGood},
		{80, "🎉", ColorGood},
		{79.9, "👏", ColorFair},
		{70, "👏", ColorFair},
		{60, "👍", ColorFair},
		{59.9, "💪", ColorPoor},
		{0, "💪", ColorPoor},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score).Emoji; got != tc.emoji {
			t.Fatalf("score %v: expected %s, got %s", tc.score, tc.emoji, got)
		}
		if got := ScoreColor(tc.score); got != tc.color {
			t.Fatalf("score %v: expected colour %s, got %s", tc.score, tc.color, got)
		}
	}
}

// TestFormatTimeTaken verifies the h/m/s rendering.
func TestFormatTimeTaken(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{999 * time.Millisecond, "0s"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m 5s"},
		{time.Hour, "1h 0m 0s"},
		{2*time.Hour + 61*time.Second, "2h 1m 1s"},
		{-5 * time.Second, "0s"},
	}
	for _, tc := range cases {
		if got := FormatTimeTaken(tc.d); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.d, tc.want, got)
		}
	}
}

// TestFilterDetails verifies numeric ordering and filtering.
func TestFilterDetails(t *testing.T) {
	details := []exam.QuestionResult{
		{QuestionNumber: "10", IsCorrect: true},
		{QuestionNumber: "2", IsCorrect: false},
		{QuestionNumber: "1", IsCorrect: true},
	}
	all := FilterDetails(details, FilterAll)
	if len(all) != 3 || all[0].QuestionNumber != "1" || all[2].QuestionNumber != "10" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if got := FilterDetails(details, FilterCorrect); len(got) != 2 {
		t.Fatalf("expected 2 correct, got %d", len(got))
	}
	if got := FilterDetails(details, FilterIncorrect); len(got) != 1 || got[0].QuestionNumber != "2" {
		t.Fatalf("unexpected incorrect details: %+v", got)
	}
	if details[0].QuestionNumber != "10" {
		t.Fatalf("input must not be reordered")
	}
}

// TestParseFilter verifies accepted filter names and cycling.
func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Fatalf("expected all for empty value")
	}
	if f, err := ParseFilter("Incorrect"); err != nil || f != FilterIncorrect {
		t.Fatalf("expected incorrect, got %v %v", f, err)
	}
	if _, err := ParseFilter("wrong"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
	if FilterAll.Next() != FilterCorrect || FilterCorrect.Next() != FilterIncorrect || FilterIncorrect.Next() != FilterAll {
		t.Fatalf("unexpected filter cycle")
	}
}

// TestDocumentRoundTrip verifies an export can be read back without loss.
func TestDocumentRoundTrip(t *testing.T) {
	original := exam.Result{
		ExamID:         "3f2b8c1e-0000-4000-8000-000000000001",
		TotalQuestions: 3,
		CorrectAnswers: 2,
		WrongAnswers:   1,
		Score:          66.66666666666667,
		TimeTaken:      exam.MillisOf(83*time.Minute + 20*time.Second + 250*time.Millisecond),
		Answers:        exam.Answers{"1": "A", "2": "C"},
		CorrectKey:     exam.Answers{"1": "A", "2": "C", "3": "E"},
		Details: []exam.QuestionResult{
			{QuestionNumber: "1", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
			{QuestionNumber: "2", UserAnswer: "C", CorrectAnswer: "C", IsCorrect: true},
			{QuestionNumber: "3", UserAnswer: "", CorrectAnswer: "E", IsCorrect: false},
		},
	}
	generated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := NewDocument(original, exam.ModeTimer, generated)
	if doc.TimeTaken != "1h 23m 20s" {
		t.Fatalf("unexpected formatted time %q", doc.TimeTaken)
	}

	path, err := WriteFile(t.TempDir(), doc)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "exam-result-3f2b8c1e-0000-4000-8000-000000000001.json" {
		t.Fatalf("unexpected file name %s", filepath.Base(path))
	}
	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(loaded.Result(), original) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded.Result(), original)
	}
	if loaded.ExamMode != exam.ModeTimer || !loaded.GeneratedAt.Equal(generated) {
		t.Fatalf("metadata lost: %s %s", loaded.ExamMode, loaded.GeneratedAt)
	}
}

// TestParseDocumentRejectsMissingID verifies malformed exports are rejected.
func TestParseDocumentRejectsMissingID(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"score": 10}`)); err == nil {
		t.Fatalf("expected error for missing exam_id")
	}
	if _, err := ParseDocument([]byte(`{`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}
