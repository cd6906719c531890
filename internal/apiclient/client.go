package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"examctl/internal/exam"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// Client talks to the exam API server.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// New constructs a client for the given base URL with DefaultTimeout.
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, DefaultTimeout)
}

// NewWithTimeout constructs a client for the given base URL with a request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
}

// WithLogger returns a copy of the client that logs requests to log.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	clone := *c
	clone.log = log.With().Str("component", "apiclient").Logger()
	return &clone
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type examEnvelope struct {
	Exam    exam.Exam `json:"exam"`
	Message string    `json:"message,omitempty"`
}

type resultEnvelope struct {
	Result  exam.Result `json:"result"`
	Message string      `json:"message,omitempty"`
}

type submitRequest struct {
	Answers exam.Answers `json:"answers"`
}

// GetExam fetches an exam by id.
func (c *Client) GetExam(ctx context.Context, id string) (exam.Exam, error) {
	var env examEnvelope
	if err := c.do(ctx, http.MethodGet, examPath(id, ""), nil, "", &env); err != nil {
		return exam.Exam{}, err
	}
	return env.Exam, nil
}

// StartExam asks the server to record the authoritative start time.
func (c *Client) StartExam(ctx context.Context, id string) (exam.Exam, error) {
	var env examEnvelope
	if err := c.do(ctx, http.MethodPost, examPath(id, "/start"), nil, "", &env); err != nil {
		return exam.Exam{}, err
	}
	return env.Exam, nil
}

// SubmitAnswers submits the answer mapping and returns the graded result.
func (c *Client) SubmitAnswers(ctx context.Context, id string, answers exam.Answers) (exam.Result, error) {
	if answers == nil {
		answers = exam.Answers{}
	}
	payload, err := json.Marshal(submitRequest{Answers: answers})
	if err != nil {
		return exam.Result{}, err
	}
	var env resultEnvelope
	if err := c.do(ctx, http.MethodPost, examPath(id, "/submit"), bytes.NewReader(payload), "application/json", &env); err != nil {
		return exam.Result{}, err
	}
	return env.Result, nil
}

// GetStatus fetches the server's status projection for an exam.
func (c *Client) GetStatus(ctx context.Context, id string) (exam.StatusReport, error) {
	var report exam.StatusReport
	if err := c.do(ctx, http.MethodGet, examPath(id, "/status"), nil, "", &report); err != nil {
		return exam.StatusReport{}, err
	}
	return report, nil
}

// AnswerKeyPreview fetches the partial answer key used to size the answer grid.
func (c *Client) AnswerKeyPreview(ctx context.Context, id string) (exam.Preview, error) {
	var preview exam.Preview
	if err := c.do(ctx, http.MethodGet, examPath(id, "/answer-key-preview"), nil, "", &preview); err != nil {
		return exam.Preview{}, err
	}
	return preview, nil
}

func examPath(id, suffix string) string {
	return "/exams/" + url.PathEscape(id) + suffix
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(started)).
		Str("request_id", requestID).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeHTTPError(resp.StatusCode, data, requestID)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
