// Package upload validates and opens the files for exam creation.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"examctl/internal/apiclient"
	"examctl/internal/exam"
	"examctl/internal/validate"
)

// Duration bounds for timer exams, in minutes.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 300
)

// ErrInvalidFileType is returned when a file is not of an accepted type.
var ErrInvalidFileType = errors.New("invalid file type")

// Form is the exam creation input.
type Form struct {
	Mode            exam.Mode `json:"mode" validate:"required,oneof=timer stopwatch"`
	DurationMinutes int       `json:"duration" validate:"required_if=Mode timer,omitempty,min=1,max=300"`
	ExamPDF         string    `json:"exam_pdf" validate:"required"`
	AnswerKey       string    `json:"answer_key" validate:"required"`
}

// Validate checks the form fields and the file types. It never touches the network.
func (f Form) Validate() error {
	var collector validate.Collector
	collector.Merge(validate.Struct(f))
	if f.ExamPDF != "" {
		if err := CheckExamFile(f.ExamPDF); err != nil {
			collector.Add("exam_pdf", err.Error())
		}
	}
	if f.AnswerKey != "" {
		if err := CheckAnswerKeyFile(f.AnswerKey); err != nil {
			collector.Add("answer_key", err.Error())
		}
	}
	return collector.Result()
}

// CheckExamFile requires a PDF by extension and content.
func CheckExamFile(path string) error {
	return checkFile(path, map[string]string{".pdf": "application/pdf"})
}

// CheckAnswerKeyFile accepts a PDF or a plain text file.
func CheckAnswerKeyFile(path string) error {
	return checkFile(path, map[string]string{
		".pdf": "application/pdf",
		".txt": "text/plain",
	})
}

func checkFile(path string, accepted map[string]string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filepath.Base(path))
	}
	ext := strings.ToLower(filepath.Ext(path))
	want, ok := accepted[ext]
	if !ok {
		return fmt.Errorf("%w: %s must be %s", ErrInvalidFileType, filepath.Base(path), describe(accepted))
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect %s: %w", filepath.Base(path), err)
	}
	if !detected.Is(want) {
		return fmt.Errorf("%w: %s looks like %s, not %s", ErrInvalidFileType, filepath.Base(path), detected.String(), want)
	}
	return nil
}

func describe(accepted map[string]string) string {
	if _, ok := accepted[".txt"]; ok {
		return "a PDF or text file"
	}
	return "a PDF"
}

// Open validates the form and opens both files for upload. The caller must
// call the returned close function.
func (f Form) Open() (apiclient.CreateExamRequest, func() error, error) {
	if err := f.Validate(); err != nil {
		return apiclient.CreateExamRequest{}, nil, err
	}
	examFile, err := os.Open(f.ExamPDF)
	if err != nil {
		return apiclient.CreateExamRequest{}, nil, fmt.Errorf("open exam file: %w", err)
	}
	keyFile, err := os.Open(f.AnswerKey)
	if err != nil {
		examFile.Close()
		return apiclient.CreateExamRequest{}, nil, fmt.Errorf("open answer key: %w", err)
	}
	req := apiclient.CreateExamRequest{
		Mode:      f.Mode,
		ExamPDF:   apiclient.FilePart{Name: filepath.Base(f.ExamPDF), Content: examFile},
		AnswerKey: apiclient.FilePart{Name: filepath.Base(f.AnswerKey), Content: keyFile},
	}
	if f.Mode == exam.ModeTimer {
		req.DurationMinutes = f.DurationMinutes
	}
	closeFn := func() error {
		return errors.Join(examFile.Close(), keyFile.Close())
	}
	return req, closeFn, nil
}
