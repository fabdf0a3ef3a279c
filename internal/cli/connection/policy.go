package connection

import (
	"context"
	"log/slog"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// Navigator is the part of the router the failure policy drives.
type Navigator interface {
	Path() domain.Route
	Replace(route domain.Route)
}

// AuthFailurePolicy reacts to a 401 from any endpoint: the stored
// credential is cleared and, unless the user is already on the login
// screen, the router is sent to /login without adding a history entry.
type AuthFailurePolicy struct {
	store   storage.TokenStore
	nav     Navigator
	logger  *slog.Logger
	metrics *metric.Registry
}

// NewAuthFailurePolicy creates a policy. nav may be nil when there is no
// interactive router; the credential is still cleared.
func NewAuthFailurePolicy(store storage.TokenStore, nav Navigator, logger *slog.Logger, metrics *metric.Registry) *AuthFailurePolicy {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFailurePolicy{
		store:   store,
		nav:     nav,
		logger:  logger,
		metrics: metrics,
	}
}

// OnAuthFailure applies the policy. It never fails; a store error is logged.
func (p *AuthFailurePolicy) OnAuthFailure(ctx context.Context) {
	p.metrics.IncAuthFailure()

	if err := p.store.Clear(ctx); err != nil {
		p.logger.Warn("failed to clear credential after 401", "error", err)
	}

	if p.nav == nil {
		return
	}
	if p.nav.Path() == domain.RouteLogin {
		p.logger.Debug("401 on login screen, staying put")
		return
	}
	p.logger.Debug("credential rejected, redirecting", "to", domain.RouteLogin)
	p.nav.Replace(domain.RouteLogin)
}
