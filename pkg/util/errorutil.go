package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. Message carries a reason key
// rendered verbatim to clients; Fields tags failures to specific input
// fields. Err holds internal detail that is logged but never exposed.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     map[string]string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, fields map[string]string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Fields: fields}
}

// NewValidationError reports one or more field-tagged input failures.
func NewValidationError(fields map[string]string) error {
	return NewDomainError("VALIDATION_FAILED", "validation_failed", http.StatusBadRequest, fields)
}

func NewFieldError(field, reason string) error {
	return NewValidationError(map[string]string{field: reason})
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "server_error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, defaulting to an
// internal error so handlers never leak raw failures.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "server_error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
