package service

import (
	"errors"
	"strings"
)

// Business-rule errors the handlers map to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrNotCourseOwner     = errors.New("user is not the course owner")
)

// ValidationError carries one message per violated field rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
