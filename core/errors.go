package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
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

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func NewAPIError(code int, detail string) error {
	if detail == "" {
		detail = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Detail: detail}
}

func (err APIError) Error() string {
	return fmt.Sprintf("api: %s (%d)", err.Detail, err.StatusCode)
}

// IsAuthRejected reports whether err is a server-side credential rejection.
func IsAuthRejected(err error) bool {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
