package answers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"examctl/internal/exam"
)

// Options are the selectable choices for every question.
var Options = []string{"A", "B", "C", "D", "E"}

var (
	// ErrInvalidOption is returned for a choice outside A-E.
	ErrInvalidOption = errors.New("invalid option")
	// ErrQuestionOutOfRange is returned for a question outside 1..total.
	ErrQuestionOutOfRange = errors.New("question out of range")
)

// Set is the sparse in-memory answer mapping for one exam attempt.
type Set struct {
	total  int
	values exam.Answers
}

// NewSet creates an empty set for questions 1..total.
func NewSet(total int) *Set {
	return &Set{total: total, values: make(exam.Answers)}
}

// Total returns the number of questions the set accepts.
func (s *Set) Total() int {
	return s.total
}

// SetTotal changes the accepted question range. Existing entries are kept.
func (s *Set) SetTotal(total int) {
	s.total = total
}

// Select records option for question, replacing any prior choice. It
// reports whether the mapping changed; reselecting the same option is a no-op.
func (s *Set) Select(question int, option string) (bool, error) {
	if err := s.checkQuestion(question); err != nil {
		return false, err
	}
	normalized, ok := NormalizeOption(option)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	key := Key(question)
	if s.values[key] == normalized {
		return false, nil
	}
	s.values[key] = normalized
	return true, nil
}

// Clear removes the answer for question.
func (s *Set) Clear(question int) bool {
	key := Key(question)
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	return true
}

// Get returns the selected option for question, or "".
func (s *Set) Get(question int) string {
	return s.values[Key(question)]
}

// AnsweredCount returns the number of non-empty answers.
func (s *Set) AnsweredCount() int {
	return AnsweredCount(s.values)
}

// Snapshot returns a copy of the mapping safe to hand to other goroutines.
func (s *Set) Snapshot() exam.Answers {
	return s.values.Clone()
}

// Len returns the number of stored entries, answered or not.
func (s *Set) Len() int {
	return len(s.values)
}

func (s *Set) checkQuestion(question int) error {
	if question < 1 || (s.total > 0 && question > s.total) {
		return fmt.Errorf("%w: %d (1..%d)", ErrQuestionOutOfRange, question, s.total)
	}
	return nil
}

// Key stringifies a question number the way the server expects.
func Key(question int) string {
	return strconv.Itoa(question)
}

// NormalizeOption upper-cases and validates a choice.
func NormalizeOption(option string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(option))
	for _, o := range Options {
		if o == normalized {
			return normalized, true
		}
	}
	return "", false
}

// AnsweredCount counts entries whose trimmed value is non-empty.
func AnsweredCount(values map[string]string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
