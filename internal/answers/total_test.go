package answers

import (
	"testing"

	"examctl/internal/exam"
)

// TestResolveTotal covers explicit, inferred and fallback counts.
func TestResolveTotal(t *testing.T) {
	cases := []struct {
		name     string
		preview  *exam.Preview
		fallback int
		want     int
		source   Resolution
	}{
		{name: "explicit wins", preview: &exam.Preview{Preview: map[string]string{"1": "A"}, TotalQuestions: 40}, want: 40, source: FromServer},
		{name: "highest key", preview: &exam.Preview{Preview: map[string]string{"1": "A", "12": "B", "3": "C"}}, want: 12, source: FromPreview},
		{name: "non numeric keys skipped", preview: &exam.Preview{Preview: map[string]string{"x": "A", "7": "B"}}, want: 7, source: FromPreview},
		{name: "empty preview", preview: &exam.Preview{}, fallback: 30, want: 30, source: FromFallback},
		{name: "fetch failed", preview: nil, want: DefaultTotal, source: FromFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, source := ResolveTotal(tc.preview, tc.fallback)
			if got != tc.want || source != tc.source {
				t.Fatalf("expected %d/%s, got %d/%s", tc.want, tc.source, got, source)
			}
		})
	}
}
