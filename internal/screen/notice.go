// Package screen holds the flows behind each page of the app. Screens do
// not know about HTTP: they take plain inputs, talk to the analysis API and
// the preference store, and return views with a Notice for the user.
package screen

import (
	"errors"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a transient message for the user, the server side of a toast.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func success(msg string) *Notice { return &Notice{Level: LevelSuccess, Message: msg} }
func info(msg string) *Notice    { return &Notice{Level: LevelInfo, Message: msg} }

var (
	ErrSuperseded    = errors.New("superseded by a newer request")
	ErrSkillLocked   = errors.New("mastered skills cannot be changed")
	ErrSkillNotFound = errors.New("skill not found")
)

// ValidationError is input rejected before any network call or state change.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string, err error) error {
	return &ValidationError{Message: msg, Err: err}
}

// NoticeFor turns an error returned by a screen into the message shown to the user.
func NoticeFor(err error) Notice {
	var validation *ValidationError
	var apiErr *analysis.APIError
	switch {
	case err == nil:
		return Notice{Level: LevelSuccess}
	case errors.As(err, &validation):
		return Notice{Level: LevelError, Message: validation.Message}
	case errors.As(err, &apiErr):
		return Notice{Level: LevelError, Message: apiErr.Message}
	case errors.Is(err, ErrSuperseded):
		return Notice{Level: LevelInfo, Message: "A newer request replaced this one"}
	case errors.Is(err, ErrSkillLocked):
		return Notice{Level: LevelError, Message: "Mastered skills cannot be changed"}
	case errors.Is(err, ErrSkillNotFound):
		return Notice{Level: LevelError, Message: "Skill not found"}
	default:
		return Notice{Level: LevelError, Message: "Something went wrong. Please try again."}
	}
}

// withMessage keeps the upstream failure but replaces what the user sees.
func withMessage(err error, message string) error {
	var apiErr *analysis.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return &analysis.APIError{
		Operation: apiErr.Operation,
		Status:    apiErr.Status,
		Message:   message,
		Err:       err,
	}
}
