package common

import (
	"errors"
	"fmt"
)

// Error codes shared across the core. Every core operation reports
// failures through one of these so the HTTP layer can translate them
// without string matching.
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeExtractionFailure = "EXTRACTION_FAILURE"
	CodeOCRFailure        = "OCR_FAILURE"
	CodeRemoteService     = "REMOTE_SERVICE_FAILURE"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeValidationFailure = "VALIDATION_FAILURE"
	CodeConversionFailure = "CONVERSION_FAILURE"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
)

// NewAppError builds an AppError with a code, a human message and an
// optional cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
