package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrResumeMissing is returned when neither resume text nor a file was supplied.
	ErrResumeMissing = errors.New("resume text or file is required")
	// ErrJobDescriptionMissing is returned for an empty or whitespace job description.
	ErrJobDescriptionMissing = errors.New("job description is required")
)

// Operation names, also used as metric labels.
const (
	OpAnalyze = "analyze"
	OpSkills  = "skills"
	OpExport  = "export"
	OpJobs    = "jobs"
)

var fallbackMessages = map[string]string{
	OpAnalyze: "Analysis failed",
	OpSkills:  "Failed to load skill recommendations",
	OpExport:  "Export failed",
	OpJobs:    "Failed to load job recommendations",
}

// APIError is a failed round trip to the analysis service. Status is 0 for transport failures.
type APIError struct {
	Operation string
	Status    int
	Message   string
	Err       error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FallbackMessage returns the generic user-facing message for an operation.
func FallbackMessage(operation string) string {
	if msg, ok := fallbackMessages[operation]; ok {
		return msg
	}
	return "Request failed"
}

// newStatusError builds an APIError from a non-2xx response, pulling the
// server's message out of the body when it has one.
func newStatusError(operation string, status int, body []byte) *APIError {
	msg := extractMessage(body)
	if msg == "" {
		msg = FallbackMessage(operation)
	}
	return &APIError{
		Operation: operation,
		Status:    status,
		Message:   msg,
		Err:       fmt.Errorf("%s: unexpected status %d", operation, status),
	}
}

func newTransportError(operation string, err error) *APIError {
	return &APIError{
		Operation: operation,
		Message:   FallbackMessage(operation),
		Err:       fmt.Errorf("%s: %w", operation, err),
	}
}

func extractMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error.message", "error"} {
		res := gjson.GetBytes(body, path)
		if res.Type == gjson.String {
			if msg := strings.TrimSpace(res.String()); msg != "" {
				return msg
			}
		}
	}
	return ""
}
