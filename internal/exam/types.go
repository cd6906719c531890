package exam

import (
	"strconv"
	"time"
)

// Mode represents how an exam is timed.
type Mode string

const (
	// ModeTimer runs against a fixed duration and auto-submits at expiry.
	ModeTimer Mode = "timer"
	// ModeStopwatch records elapsed time and is submitted manually.
	ModeStopwatch Mode = "stopwatch"
)

// Valid reports whether the mode is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeTimer || m == ModeStopwatch
}

// Status represents the lifecycle state of an exam session.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Millis is a duration expressed in whole milliseconds on the wire.
type Millis int64

// Duration converts the millisecond count to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// MillisOf converts a time.Duration to whole milliseconds.
func MillisOf(d time.Duration) Millis {
	return Millis(d / time.Millisecond)
}

// Answers maps question numbers ("1", "2", ...) to the selected option.
type Answers map[string]string

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Exam is the client's cached copy of a server-owned exam.
type Exam struct {
	ID            string     `json:"id"`
	Mode          Mode       `json:"mode"`
	Status        Status     `json:"status"`
	ExamPDFPath   string     `json:"exam_pdf_path,omitempty"`
	AnswerKeyPath string     `json:"answer_key_path,omitempty"`
	Duration      *Millis    `json:"duration,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Answers       Answers    `json:"answers"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AllowedDuration returns the fixed duration of a timer exam, or zero.
func (e Exam) AllowedDuration() time.Duration {
	if e.Duration == nil {
		return 0
	}
	return e.Duration.Duration()
}

// StatusReport is the server's point-in-time projection of an exam's timing.
type StatusReport struct {
	ID            string     `json:"id"`
	Mode          Mode       `json:"mode"`
	Status        Status     `json:"status"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	ElapsedTime   *Millis    `json:"elapsed_time,omitempty"`
	RemainingTime *Millis    `json:"remaining_time,omitempty"`
	TotalTime     *Millis    `json:"total_time,omitempty"`
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	QuestionNumber string `json:"question_number"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Number parses the question number, returning 0 when it is not numeric.
func (q QuestionResult) Number() int {
	n, err := strconv.Atoi(q.QuestionNumber)
	if err != nil {
		return 0
	}
	return n
}

// Result is the server-computed score breakdown of a submitted exam.
type Result struct {
	ExamID         string           `json:"exam_id"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	WrongAnswers   int              `json:"wrong_answers"`
	Score          float64          `json:"score"`
	TimeTaken      Millis           `json:"time_taken"`
	Answers        Answers          `json:"answers"`
	CorrectKey     Answers          `json:"correct_key"`
	Details        []QuestionResult `json:"details"`
}

// Preview is a partial sample of the answer key.
type Preview struct {
	Preview        map[string]string `json:"preview"`
	TotalQuestions int               `json:"total_questions,omitempty"`
}
