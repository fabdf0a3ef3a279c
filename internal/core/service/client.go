package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// API paths.
const (
	PathLogin    = "/api/v1/auth/login"
	PathRegister = "/api/v1/auth/register"
	PathShorten  = "/api/v1/shorten"
	PathLinks    = "/api/v1/links"
)

// APIClient sends JSON requests to the backend. Implementations attach
// the stored credential and apply the 401 policy.
type APIClient interface {
	Do(ctx context.Context, method, path string, body, target any) error
	BaseURL() string
}

// responseError is implemented by errors carrying a decoded error body.
type responseError interface {
	error
	StatusCode() int
	Fields() (errField, message string)
}

// Normalize reduces err to a single displayable message, taking the
// first non-empty of: body "error", body "message", the error text, and
// domain.ErrBackend's generic message. 401 responses are tagged
// SH-AUTH-4010; everything else SH-API-5000. The HTTP status, when there
// was a response, goes into Details.
func Normalize(err error) *domain.DomainError {
	if err == nil {
		return nil
	}

	base := domain.ErrBackend
	var msg string

	var re responseError
	if errors.As(err, &re) {
		if re.StatusCode() == http.StatusUnauthorized {
			base = domain.ErrUnauthorized
		}
		base = base.WithDetails(fmt.Sprintf("HTTP %d", re.StatusCode()))
		errField, message := re.Fields()
		msg = firstNonEmpty(errField, message)
	}
	if msg == "" {
		msg = err.Error()
	}
	if msg == "" {
		msg = domain.ErrBackend.Message
	}

	return base.WithMessage(msg).WithCause(err)
}

// ErrorField returns the body "error" field of err, or fallback when err
// carries none.
func ErrorField(err error, fallback string) string {
	var re responseError
	if errors.As(err, &re) {
		if errField, _ := re.Fields(); errField != "" {
			return errField
		}
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
