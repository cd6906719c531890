package validate

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Mode  string `yaml:"mode" validate:"oneof=timer stopwatch"`
	Count int    `validate:"min=1,max=300"`
	Inner inner  `json:"inner"`
}

type inner struct {
	URL string `yaml:"url" validate:"required,url"`
}

// TestStructReportsFieldNames verifies issues use json/yaml names and nested paths.
func TestStructReportsFieldNames(t *testing.T) {
	err := Struct(sample{Mode: "other", Count: 0, Inner: inner{URL: "not a url"}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "mode", "Count", "inner.url"} {
		if !verr.Has(field) {
			t.Fatalf("expected issue for %s, got %v", field, verr.Issues)
		}
	}
	if !strings.Contains(verr.Error(), "name: name is a required field") {
		t.Fatalf("expected translated message, got %q", verr.Error())
	}
}

// TestMessagesAreTranslated verifies no issue falls back to the raw
// "Field validation for ..." text produced without registered translations.
func TestMessagesAreTranslated(t *testing.T) {
	err := Struct(sample{Mode: "other", Count: 400, Inner: inner{URL: "not a url"}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, issue := range verr.Issues {
		if issue.Message == "" || strings.Contains(issue.Message, "Field validation for") {
			t.Fatalf("untranslated message for %s: %q", issue.Field, issue.Message)
		}
	}
	if err := Var("mode", "other", "oneof=timer stopwatch"); err == nil || !strings.Contains(err.Error(), "must be one of [timer stopwatch]") {
		t.Fatalf("expected translated oneof message, got %v", err)
	}
}

// TestStructValid verifies a valid struct passes.
func TestStructValid(t *testing.T) {
	if err := Struct(sample{Name: "x", Mode: "timer", Count: 60, Inner: inner{URL: "http://localhost:8080"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestVarUUID verifies single-value validation.
func TestVarUUID(t *testing.T) {
	if err := Var("exam_id", "3f2b8c1e-9d4a-4e8b-9c1d-2a3b4c5d6e7f", "required,uuid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Var("exam_id", "abc", "required,uuid")
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("exam_id") {
		t.Fatalf("expected exam_id issue, got %v", err)
	}
}

// TestTranslateErrors verifies the field map form.
func TestTranslateErrors(t *testing.T) {
	fields := TranslateErrors(Struct(sample{Mode: "timer", Count: 1, Inner: inner{URL: "http://x"}}))
	if len(fields) != 1 || fields["name"] == "" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if got := TranslateErrors(errors.New("boom")); got["detail"] != "boom" {
		t.Fatalf("expected detail entry, got %v", got)
	}
}

// TestCollectorMerge verifies tag and manual issues combine.
func TestCollectorMerge(t *testing.T) {
	var c Collector
	if c.Result() != nil {
		t.Fatalf("expected nil result for empty collector")
	}
	c.Merge(Struct(sample{Mode: "timer", Count: 1, Inner: inner{URL: "http://x"}}))
	c.Add("exam_pdf", "must be a PDF")
	var verr *ValidationError
	if !errors.As(c.Result(), &verr) || len(verr.Issues) != 2 {
		t.Fatalf("expected two issues, got %v", c.Result())
	}
}
