package result

import (
	"fmt"
	"sort"
	"strings"

	"examctl/internal/exam"
)

// Filter selects which question details are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCorrect   Filter = "correct"
	FilterIncorrect Filter = "incorrect"
)

var filterOrder = []Filter{FilterAll, FilterCorrect, FilterIncorrect}

// ParseFilter accepts all, correct or incorrect (case-insensitive); empty means all.
func ParseFilter(value string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(value))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCorrect:
		return FilterCorrect, nil
	case FilterIncorrect:
		return FilterIncorrect, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, correct or incorrect)", value)
}

// Next cycles all -> correct -> incorrect -> all.
func (f Filter) Next() Filter {
	for i, candidate := range filterOrder {
		if candidate == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterAll
}

// Match reports whether a detail passes the filter.
func (f Filter) Match(detail exam.QuestionResult) bool {
	switch f {
	case FilterCorrect:
		return detail.IsCorrect
	case FilterIncorrect:
		return !detail.IsCorrect
	default:
		return true
	}
}

// SortedDetails returns a copy of details ordered by numeric question number.
func SortedDetails(details []exam.QuestionResult) []exam.QuestionResult {
	out := append([]exam.QuestionResult(nil), details...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number() < out[j].Number()
	})
	return out
}

// FilterDetails returns the sorted details that pass f.
func FilterDetails(details []exam.QuestionResult, f Filter) []exam.QuestionResult {
	sorted := SortedDetails(details)
	out := sorted[:0]
	for _, detail := range sorted {
		if f.Match(detail) {
			out = append(out, detail)
		}
	}
	return out
}
