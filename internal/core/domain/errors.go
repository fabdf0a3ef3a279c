// Package domain defines the core domain models for shurlty-cli.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a client error with a structured error code.
//
// Message is the human-readable text surfaced to the user as-is; forms
// show it verbatim, so it never carries the code.
type DomainError struct {
	Code    string // Error code (e.g., "SH-VAL-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of the error carrying a different message.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
		Cause:   e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// MessageOf returns the user-facing message of err.
//
// For a DomainError this is its Message; for any other error it is
// err.Error(). An empty result is replaced by fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var de *DomainError
	if errors.As(err, &de) {
		if de.Message != "" {
			return de.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// ============================================================================
// Validation Errors (VAL)
// ============================================================================

var (
	// ErrValidation indicates local input validation failed. Never sent to
	// the backend.
	ErrValidation = NewDomainError("SH-VAL-4000", "validation failed")
)

// ============================================================================
// Backend Errors (API)
// ============================================================================

var (
	// ErrBackend indicates a transport or backend failure.
	ErrBackend = NewDomainError("SH-API-5000", "Something went wrong")

	// ErrUnauthorized indicates the backend rejected the credential.
	// Besides the message it triggers the global session teardown.
	ErrUnauthorized = NewDomainError("SH-AUTH-4010", "unauthorized")

	// ErrNotLoggedIn indicates a protected operation was attempted without
	// a stored credential.
	ErrNotLoggedIn = NewDomainError("SH-AUTH-4011", "not logged in")
)

// ============================================================================
// Form Errors (FORM)
// ============================================================================

var (
	// ErrSubmitInFlight indicates a submission is already outstanding on
	// the same form instance.
	ErrSubmitInFlight = NewDomainError("SH-FORM-4090", "submission already in progress")
)

// ============================================================================
// Storage Errors (STOR)
// ============================================================================

var (
	// ErrStorage indicates the token store could not be read or written.
	ErrStorage = NewDomainError("SH-STOR-5001", "storage error")
)
