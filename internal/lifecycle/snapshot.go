package lifecycle

import (
	"time"

	"examctl/internal/answers"
	"examctl/internal/exam"
)

// View is the screen the controller currently wants shown.
type View int

const (
	ViewLoading View = iota
	ViewError
	ViewStart
	ViewActive
	ViewResult
	ViewFinished
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewStart:
		return "start"
	case ViewActive:
		return "active"
	case ViewResult:
		return "result"
	case ViewFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of controller state handed to views.
type Snapshot struct {
	View   View
	Exam   exam.Exam
	Status exam.Status

	Answers     exam.Answers
	Answered    int
	Total       int
	TotalSource answers.Resolution
	CanSubmit   bool

	Confirming bool
	Starting   bool
	Submitting bool
	// AutoSubmitted is set once the expiry submission has been attempted.
	AutoSubmitted bool

	// Error is an inline, retryable failure; Fatal is a load failure.
	Error string
	Fatal string

	Result *exam.Result

	Remaining time.Duration
	Elapsed   time.Duration
	Warning   bool
	Critical  bool
	Progress  float64

	Now time.Time
}

// Timer reports whether the snapshot belongs to a countdown exam.
func (s Snapshot) Timer() bool {
	return s.Exam.Mode == exam.ModeTimer
}

func cloneResult(r *exam.Result) *exam.Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Answers = r.Answers.Clone()
	out.CorrectKey = r.CorrectKey.Clone()
	out.Details = append([]exam.QuestionResult(nil), r.Details...)
	return &out
}

func cloneExam(e exam.Exam) exam.Exam {
	out := e
	if e.Answers != nil {
		out.Answers = e.Answers.Clone()
	}
	if e.Duration != nil {
		d := *e.Duration
		out.Duration = &d
	}
	if e.StartTime != nil {
		t := *e.StartTime
		out.StartTime = &t
	}
	if e.EndTime != nil {
		t := *e.EndTime
		out.EndTime = &t
	}
	return out
}
