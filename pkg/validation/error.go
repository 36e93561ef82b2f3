package validation

import (
	"errors"
	"fmt"
	"strings"
)

// NonFieldErrors is the error dict key used for form-level messages.
const NonFieldErrors = "__all__"

// Error is returned by field and form cleaners when a value fails validation.
// It carries one or more user-facing messages and an optional code matching
// the error message key that produced it (for example "required").
type Error struct {
	Code     string
	messages []string
}

// NewError builds a validation error with a single message.
func NewError(code, message string) *Error {
	return &Error{Code: code, messages: []string{message}}
}

// Errorf builds a validation error from a format string.
func Errorf(code, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// Join merges several errors into one validation error. Nil errors are
// skipped; the code of the first validation error wins.
func Join(errs ...error) error {
	var out *Error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if out == nil {
			out = &Error{}
		}
		var verr *Error
		if errors.As(err, &verr) && out.Code == "" {
			out.Code = verr.Code
		}
		out.messages = append(out.messages, Messages(err)...)
	}
	if out == nil {
		return nil
	}
	return out
}

// Messages returns a copy of the error messages.
func (e *Error) Messages() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.messages...)
}

func (e *Error) Error() string {
	if e == nil || len(e.messages) == 0 {
		return "validation: invalid value"
	}
	return strings.Join(e.messages, "; ")
}

// Messages extracts user-facing messages from any error. Validation errors
// yield their messages; other errors yield their Error() text.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Messages()
	}
	return []string{err.Error()}
}

// IsValidationError reports whether err wraps a validation error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
