package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrLocalMismatch is returned when a confirmed mutation targets an id no longer in the local snapshot.
	ErrLocalMismatch = errors.New("record is no longer in the local list")

	// ErrNoRecord is returned when a successful response carries no usable record.
	ErrNoRecord = errors.New("server response did not include the saved record")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// Error renders one `field: message` per line, after the wrapped error's message (if any).
func (err ValidationError) Error() string {
	lines := make([]string, 0, len(err.Fields)+1)
	if err.Err != nil {
		lines = append(lines, err.Err.Error())
	}
	for _, fe := range err.Fields {
		if fe.Field == "" {
			lines = append(lines, fe.Error)
			continue
		}
		lines = append(lines, fe.Field+": "+fe.Error)
	}
	return strings.Join(lines, "\n")
}

func (err ValidationError) Unwrap() error { return err.Err }

// NetworkError means the request never completed.
type NetworkError struct {
	Op  string
	Err error
}

func (err *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", err.Op, err.Err)
}

func (err *NetworkError) Unwrap() error { return err.Err }

// Cause lets errors.Cause reach the transport error.
func (err *NetworkError) Cause() error { return err.Err }

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status  int
	Message string
}

func NewHTTPError(status int, msg string) *HTTPError {
	if msg == "" {
		msg = fmt.Sprintf("%s (%d)", http.StatusText(status), status)
	}
	return &HTTPError{Status: status, Message: msg}
}

func (err *HTTPError) Error() string {
	return err.Message
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.Status == http.StatusNotFound
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// Message returns the text shown to the user for err.
// Wrapping context added along the way is dropped for the known failure types.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		verr *ValidationError
		herr *HTTPError
		nerr *NetworkError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &herr):
		return herr.Error()
	case errors.As(err, &nerr):
		return "could not reach the server, please try again"
	default:
		return err.Error()
	}
}
