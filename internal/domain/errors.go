package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz submission specific errors
	CodeSubmissionNotFound ErrorCode = "SUBMISSION_NOT_FOUND"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	CodeStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"
	CodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewSubmissionNotFoundError(submissionID string) *DomainError {
	e := NewError(CodeSubmissionNotFound, "Submission not found", nil)
	e.Context = map[string]interface{}{"submission_id": submissionID}
	return e
}

// NewRateLimitError carries the retry-after hint in seconds; the error
// middleware surfaces it as a Retry-After header.
func NewRateLimitError(retryAfterSeconds int) *DomainError {
	e := NewError(CodeRateLimited, "Too many requests. Please try again later.", nil)
	e.Context = map[string]interface{}{"retry_after": retryAfterSeconds}
	return e
}

// NewConfigurationError marks a server misconfiguration. The client only
// ever sees the generic message; the cause goes to the server log.
func NewConfigurationError(message string, cause error) *DomainError {
	return NewError(CodeConfiguration, message, cause)
}

func NewStoreUnavailableError(cause error) *DomainError {
	return NewError(CodeStoreUnavailable, "Database error. Please try again.", cause)
}

func NewCacheUnavailableError(message string) *DomainError {
	return NewError(CodeCacheUnavailable, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// ValidationError is a single field-level validation failure. The message is
// safe to show to the user verbatim.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors aggregates field-level failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, ", ")
}

func NewFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
