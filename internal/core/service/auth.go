package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// AuthService handles login and registration.
type AuthService struct {
	client APIClient
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(client APIClient, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{client: client, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Inputs are sent as given.
// Failures are returned as *domain.DomainError with a normalized message.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	var out domain.LoginResult
	if err := s.client.Do(ctx, http.MethodPost, PathLogin, loginRequest{Email: email, Password: password}, &out); err != nil {
		s.logger.Debug("login failed", "error", err)
		return domain.LoginResult{}, Normalize(err)
	}
	return out, nil
}

// Register creates an account. It never touches the token store.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.RegisterResult, error) {
	var out domain.RegisterResult
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := s.client.Do(ctx, http.MethodPost, PathRegister, req, &out); err != nil {
		s.logger.Debug("registration failed", "error", err)
		return domain.RegisterResult{}, Normalize(err)
	}
	return out, nil
}
