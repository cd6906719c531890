package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"examctl/internal/exam"
)

// ExamServer is an in-memory implementation of the exam HTTP API.
type ExamServer struct {
	mu           sync.Mutex
	now          func() time.Time
	exams        map[string]*exam.Exam
	keys         map[string]map[string]string
	totals       map[string]int
	submissions  map[string][]exam.Answers
	submitted    map[string]bool
	failures     map[string][]injectedFailure
	calls        map[string]int
	strictExpiry bool
}

type injectedFailure struct {
	status  int
	message string
}

// ExamServerConfig configures NewExamServer.
type ExamServerConfig struct {
	Now func() time.Time
	// StrictExpiry rejects submissions once an exam has expired. By default
	// the first submission after expiry is still graded.
	StrictExpiry bool
}

// NewExamServer builds an empty server.
func NewExamServer(cfg ExamServerConfig) *ExamServer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ExamServer{
		now:          cfg.Now,
		exams:        make(map[string]*exam.Exam),
		keys:         make(map[string]map[string]string),
		totals:       make(map[string]int),
		submissions:  make(map[string][]exam.Answers),
		submitted:    make(map[string]bool),
		failures:     make(map[string][]injectedFailure),
		calls:        make(map[string]int),
		strictExpiry: cfg.StrictExpiry,
	}
}

// AddExam registers an exam directly and returns its id.
func (s *ExamServer) AddExam(mode exam.Mode, duration time.Duration, key map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(mode, duration, key)
}

// SetTotalQuestions makes the preview endpoint report an explicit count.
func (s *ExamServer) SetTotalQuestions(id string, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[id] = total
}

// SetAnswers replaces the answers the server holds for id, as if saved by
// an earlier session.
func (s *ExamServer) SetAnswers(id string, answers exam.Answers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.exams[id]; ok {
		e.Answers = answers.Clone()
	}
}

// FailNext makes the next call of op ("get", "status", "start", "submit",
// "preview", "create") answer with status and an error message.
func (s *ExamServer) FailNext(op string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = append(s.failures[op], injectedFailure{status: status, message: message})
}

// Calls returns how many times op was requested.
func (s *ExamServer) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Submissions returns every answer set received for id, in order.
func (s *ExamServer) Submissions(id string) []exam.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]exam.Answers, 0, len(s.submissions[id]))
	for _, a := range s.submissions[id] {
		out = append(out, a.Clone())
	}
	return out
}

// Exam returns a copy of the stored exam after applying lazy expiry.
func (s *ExamServer) Exam(id string) (exam.Exam, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exams[id]
	if !ok {
		return exam.Exam{}, false
	}
	s.expireLocked(e)
	return *e, true
}

// Handler returns the HTTP handler mounted under /api/v1.
func (s *ExamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/exams", s.handleCreate)
	mux.HandleFunc("GET /api/v1/exams/{id}", s.handleGet)
	mux.HandleFunc("POST /api/v1/exams/{id}/start", s.handleStart)
	mux.HandleFunc("POST /api/v1/exams/{id}/submit", s.handleSubmit)
	mux.HandleFunc("GET /api/v1/exams/{id}/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/exams/{id}/answer-key-preview", s.handlePreview)
	return mux
}

func (s *ExamServer) addLocked(mode exam.Mode, duration time.Duration, key map[string]string) string {
	now := s.now()
	e := &exam.Exam{
		ID:        uuid.NewString(),
		Mode:      mode,
		Status:    exam.StatusPending,
		Answers:   exam.Answers{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mode == exam.ModeTimer {
		d := exam.MillisOf(duration)
		e.Duration = &d
	}
	s.exams[e.ID] = e
	copied := make(map[string]string, len(key))
	for k, v := range key {
		copied[k] = v
	}
	s.keys[e.ID] = copied
	return e.ID
}

// expireLocked moves an active timer exam to expired once its time is up.
func (s *ExamServer) expireLocked(e *exam.Exam) {
	if e.Status != exam.StatusActive || e.Mode != exam.ModeTimer || e.StartTime == nil || e.Duration == nil {
		return
	}
	end := e.StartTime.Add(e.Duration.Duration())
	if s.now().Before(end) {
		return
	}
	e.Status = exam.StatusExpired
	e.EndTime = &end
	e.UpdatedAt = end
}

// begin records a call and returns an injected failure if one is queued.
func (s *ExamServer) begin(op string) (injectedFailure, bool) {
	s.calls[op]++
	queue := s.failures[op]
	if len(queue) == 0 {
		return injectedFailure{}, false
	}
	s.failures[op] = queue[1:]
	return queue[0], true
}

func (s *ExamServer) lookup(w http.ResponseWriter, r *http.Request, op string) (*exam.Exam, bool) {
	if failure, ok := s.begin(op); ok {
		writeJSON(w, failure.status, map[string]string{"error": failure.message})
		return nil, false
	}
	e, ok := s.exams[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exam not found"})
		return nil, false
	}
	s.expireLocked(e)
	return e, true
}

func (s *ExamServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if failure, ok := s.begin("create"); ok {
		writeJSON(w, failure.status, map[string]string{"error": failure.message})
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to parse form data"})
		return
	}
	mode := exam.Mode(r.FormValue("mode"))
	if !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid mode. Must be 'timer' or 'stopwatch'"})
		return
	}
	var duration time.Duration
	if mode == exam.ModeTimer {
		minutes, err := strconv.Atoi(r.FormValue("duration"))
		if err != nil || minutes <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Duration must be a positive number of minutes"})
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}
	for _, field := range []string{"exam_pdf", "answer_key"} {
		f, _, err := r.FormFile(field)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": field + " file is required"})
			return
		}
		f.Close()
	}
	key, err := readKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid answer key format: " + err.Error()})
		return
	}
	id := s.addLocked(mode, duration, key)
	writeJSON(w, http.StatusCreated, map[string]any{"exam": s.exams[id], "message": "Exam created successfully"})
}

func (s *ExamServer) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(w, r, "get")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exam": e})
}

func (s *ExamServer) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(w, r, "start")
	if !ok {
		return
	}
	if e.Status != exam.StatusPending {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("exam is already %s", e.Status)})
		return
	}
	now := s.now()
	e.StartTime = &now
	e.Status = exam.StatusActive
	e.UpdatedAt = now
	writeJSON(w, http.StatusOK, map[string]any{"exam": e, "message": "Exam started successfully"})
}

func (s *ExamServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(w, r, "submit")
	if !ok {
		return
	}
	var req struct {
		Answers exam.Answers `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	s.submissions[e.ID] = append(s.submissions[e.ID], req.Answers.Clone())
	lateAllowed := e.Status == exam.StatusExpired && !s.strictExpiry && !s.submitted[e.ID]
	if e.Status != exam.StatusActive && !lateAllowed {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("exam is %s and cannot accept answers", e.Status)})
		return
	}
	now := s.now()
	if e.Status == exam.StatusActive {
		e.Status = exam.StatusCompleted
		e.EndTime = &now
	}
	e.Answers = req.Answers.Clone()
	e.UpdatedAt = now
	s.submitted[e.ID] = true
	writeJSON(w, http.StatusOK, map[string]any{"result": grade(e, s.keys[e.ID]), "message": "Answers submitted successfully"})
}

func (s *ExamServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(w, r, "status")
	if !ok {
		return
	}
	report := exam.StatusReport{ID: e.ID, Mode: e.Mode, Status: e.Status}
	now := s.now()
	if e.StartTime != nil {
		start := *e.StartTime
		report.StartTime = &start
		elapsed := exam.MillisOf(now.Sub(start))
		report.ElapsedTime = &elapsed
		if e.Mode == exam.ModeTimer && e.Duration != nil {
			remaining := exam.MillisOf(e.Duration.Duration() - now.Sub(start))
			if remaining < 0 {
				remaining = 0
			}
			report.RemainingTime = &remaining
		}
	}
	if e.EndTime != nil {
		end := *e.EndTime
		report.EndTime = &end
		if e.StartTime != nil {
			total := exam.MillisOf(end.Sub(*e.StartTime))
			report.TotalTime = &total
		}
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *ExamServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(w, r, "preview")
	if !ok {
		return
	}
	key := s.keys[e.ID]
	numbers := make([]int, 0, len(key))
	for k := range key {
		if n, err := strconv.Atoi(k); err == nil {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	preview := make(map[string]string)
	for i, n := range numbers {
		if i >= 5 {
			break
		}
		preview[strconv.Itoa(n)] = key[strconv.Itoa(n)]
	}
	// The sample always carries the highest question number.
	if len(numbers) > 0 {
		last := strconv.Itoa(numbers[len(numbers)-1])
		preview[last] = key[last]
	}
	writeJSON(w, http.StatusOK, exam.Preview{Preview: preview, TotalQuestions: s.totals[e.ID]})
}

// readKey parses "1. A" / "1 A" / "1:A" lines from a plain text answer key.
// PDF keys are accepted with an empty mapping.
func readKey(r *http.Request) (map[string]string, error) {
	f, header, err := r.FormFile("answer_key")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	key := make(map[string]string)
	if strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return key, nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '.' || r == ':' || r == '-' || r == '\t' || r == ')'
		})
		if len(fields) != 2 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		key[fields[0]] = strings.ToUpper(fields[1])
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("no answers found")
	}
	return key, nil
}

func grade(e *exam.Exam, key map[string]string) exam.Result {
	result := exam.Result{
		ExamID:         e.ID,
		TotalQuestions: len(key),
		Answers:        e.Answers.Clone(),
		CorrectKey:     exam.Answers(key).Clone(),
		Details:        make([]exam.QuestionResult, 0, len(key)),
	}
	if e.StartTime != nil && e.EndTime != nil {
		result.TimeTaken = exam.MillisOf(e.EndTime.Sub(*e.StartTime))
	}
	numbers := make([]string, 0, len(key))
	for k := range key {
		numbers = append(numbers, k)
	}
	sort.Slice(numbers, func(i, j int) bool {
		a, _ := strconv.Atoi(numbers[i])
		b, _ := strconv.Atoi(numbers[j])
		return a < b
	})
	for _, q := range numbers {
		user := e.Answers[q]
		correct := strings.EqualFold(strings.TrimSpace(user), strings.TrimSpace(key[q]))
		if correct {
			result.CorrectAnswers++
		} else {
			result.WrongAnswers++
		}
		result.Details = append(result.Details, exam.QuestionResult{
			QuestionNumber: q,
			UserAnswer:     user,
			CorrectAnswer:  key[q],
			IsCorrect:      correct,
		})
	}
	if result.TotalQuestions > 0 {
		result.Score = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
