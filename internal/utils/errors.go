// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
)

type ErrorKind int

const (
	KindUpstream ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// APIError is the error type handlers return. Message is shown to the client;
// Err is kept for logs only.
type APIError struct {
	Kind    ErrorKind
	Message string
	Details interface{}
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, details interface{}) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Details: details}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{Kind: KindConflict, Message: message}
}

func NewUpstreamError(message string, err error) *APIError {
	return &APIError{Kind: KindUpstream, Message: message, Err: err}
}

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// AsAPIError translates any error into the APIError the client will see.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return NewValidationError("Invalid input", GetValidationErrors(validationErrs))
	}

	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError("Resource not found")
	}

	return NewUpstreamError("Internal server error", err)
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	return AsAPIError(err).Kind.Status()
}
