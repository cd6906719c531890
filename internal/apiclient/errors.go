package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the exam API.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

// Error returns the server's own message when it sent one.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http %d %s", e.Status, http.StatusText(e.Status))
}

// NotFound reports whether the server answered 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeHTTPError(status int, body []byte, requestID string) error {
	apiErr := &Error{Status: status, RequestID: requestID}
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		apiErr.Message = resp.Error
	}
	return apiErr
}

// Message extracts a user-facing message: the server's error text for API
// errors, the error string otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
