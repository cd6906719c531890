package validate

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with one field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Has reports whether any issue concerns field.
func (err *ValidationError) Has(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Collector accumulates issues from checks the struct tags cannot express.
type Collector struct {
	issues []Issue
}

// Add records a new validation issue.
func (c *Collector) Add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// Merge appends the issues of a *ValidationError; other errors are recorded under "detail".
func (c *Collector) Merge(err error) {
	if err == nil {
		return
	}
	if verr, ok := err.(*ValidationError); ok {
		c.issues = append(c.issues, verr.Issues...)
		return
	}
	c.Add("detail", err.Error())
}

// Result returns a ValidationError when issues are present.
func (c *Collector) Result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
