package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"examctl/internal/exam"
)

// FilePart is one uploaded file.
type FilePart struct {
	Name    string
	Content io.Reader
}

// CreateExamRequest carries the multipart fields of POST /exams.
type CreateExamRequest struct {
	Mode            exam.Mode
	DurationMinutes int
	ExamPDF         FilePart
	AnswerKey       FilePart
}

// CreateExamResponse is the server's reply to a create.
type CreateExamResponse struct {
	Exam    exam.Exam `json:"exam"`
	Message string    `json:"message"`
}

// CreateExam uploads an exam PDF and answer key. Duration is only sent for
// timer mode, in minutes.
func (c *Client) CreateExam(ctx context.Context, req CreateExamRequest) (CreateExamResponse, error) {
	body, contentType, err := encodeCreate(req)
	if err != nil {
		return CreateExamResponse{}, err
	}
	var resp CreateExamResponse
	if err := c.do(ctx, http.MethodPost, "/exams", body, contentType, &resp); err != nil {
		return CreateExamResponse{}, err
	}
	return resp, nil
}

func encodeCreate(req CreateExamRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("mode", string(req.Mode)); err != nil {
		return nil, "", err
	}
	if req.Mode == exam.ModeTimer {
		if err := w.WriteField("duration", strconv.Itoa(req.DurationMinutes)); err != nil {
			return nil, "", err
		}
	}
	if err := writeFile(w, "exam_pdf", req.ExamPDF); err != nil {
		return nil, "", err
	}
	if err := writeFile(w, "answer_key", req.AnswerKey); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, part FilePart) error {
	if part.Content == nil {
		return fmt.Errorf("%s: missing file content", field)
	}
	fw, err := w.CreateFormFile(field, part.Name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, part.Content); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}
