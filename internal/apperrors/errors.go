package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for the response envelope
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "server"
	}
}

// ValidationError carries one message per violated field constraint
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NotFoundError reports a missing record
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewValidation builds a validation error from field messages
func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// NewNotFound builds a not-found error for a resource identifier
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s with ID %s not found", resource, id)}
}

// KindOf returns the classification of err, looking through wrapped errors
func KindOf(err error) Kind {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return KindNotFound
	}
	return KindServer
}

// Messages returns the client-facing error list for err
func Messages(err error) []string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Errors
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return []string{nfErr.Message}
	}
	return []string{err.Error()}
}
