package connection

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON error payload returned by the API.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is returned for any response with status >= 400.
type APIError struct {
	Status int
	Body   ErrorBody
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Body.Error != "":
		return e.Body.Error
	case e.Body.Message != "":
		return e.Body.Message
	default:
		return fmt.Sprintf("request failed with status code %d", e.Status)
	}
}

// Unauthorized reports whether the backend rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status.
func (e *APIError) StatusCode() int {
	return e.Status
}

// Fields returns the decoded "error" and "message" body fields.
func (e *APIError) Fields() (errField, message string) {
	return e.Body.Error, e.Body.Message
}
