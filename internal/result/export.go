package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"examctl/internal/exam"
)

// Document is the downloadable JSON form of a result. It carries every
// field of exam.Result plus presentation metadata.
type Document struct {
	ExamID          string                `json:"exam_id"`
	Score           float64               `json:"score"`
	CorrectAnswers  int                   `json:"correct_answers"`
	WrongAnswers    int                   `json:"wrong_answers"`
	TotalQuestions  int                   `json:"total_questions"`
	TimeTaken       string                `json:"time_taken"`
	TimeTakenMillis exam.Millis           `json:"time_taken_ms"`
	ExamMode        exam.Mode             `json:"exam_mode"`
	Answers         exam.Answers          `json:"answers"`
	CorrectKey      exam.Answers          `json:"correct_key"`
	Details         []exam.QuestionResult `json:"details"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// NewDocument builds an export document for r.
func NewDocument(r exam.Result, mode exam.Mode, generatedAt time.Time) Document {
	return Document{
		ExamID:          r.ExamID,
		Score:           r.Score,
		CorrectAnswers:  r.CorrectAnswers,
		WrongAnswers:    r.WrongAnswers,
		TotalQuestions:  r.TotalQuestions,
		TimeTaken:       FormatTimeTaken(r.TimeTaken.Duration()),
		TimeTakenMillis: r.TimeTaken,
		ExamMode:        mode,
		Answers:         r.Answers.Clone(),
		CorrectKey:      r.CorrectKey.Clone(),
		Details:         append([]exam.QuestionResult{}, r.Details...),
		GeneratedAt:     generatedAt.UTC(),
	}
}

// Result recovers the exam.Result the document was built from.
func (d Document) Result() exam.Result {
	return exam.Result{
		ExamID:         d.ExamID,
		TotalQuestions: d.TotalQuestions,
		CorrectAnswers: d.CorrectAnswers,
		WrongAnswers:   d.WrongAnswers,
		Score:          d.Score,
		TimeTaken:      d.TimeTakenMillis,
		Answers:        d.Answers.Clone(),
		CorrectKey:     d.CorrectKey.Clone(),
		Details:        append([]exam.QuestionResult{}, d.Details...),
	}
}

// FileName returns the export file name for an exam id.
func FileName(examID string) string {
	return fmt.Sprintf("exam-result-%s.json", examID)
}

// Marshal encodes the document as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(payload, '\n'), nil
}

// ParseDocument decodes an export document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode result document: %w", err)
	}
	if doc.ExamID == "" {
		return Document{}, fmt.Errorf("decode result document: missing exam_id")
	}
	return doc, nil
}

// WriteFile writes the document into dir and returns its path.
func WriteFile(dir string, doc Document) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	payload, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(doc.ExamID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// ReadFile loads a document written by WriteFile.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return ParseDocument(data)
}
