package view

import (
	"context"
	"io"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// View renders one screen.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, w io.Writer) error

// Render calls f.
func (f ViewFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Replacer changes the current route without adding history.
type Replacer interface {
	Replace(route domain.Route)
}

// Guard renders its view only while a credential is stored.
type Guard struct {
	store storage.TokenStore
	nav   Replacer
	view  View
}

// NewGuard wraps view.
func NewGuard(store storage.TokenStore, nav Replacer, view View) *Guard {
	return &Guard{store: store, nav: nav, view: view}
}

// Check reads the store. Without a credential it replaces the route with
// /login and returns domain.ErrNotLoggedIn.
func (g *Guard) Check(ctx context.Context) error {
	if storage.Authenticated(ctx, g.store) {
		return nil
	}
	g.nav.Replace(domain.RouteLogin)
	return domain.ErrNotLoggedIn
}

// Render draws the wrapped view, or nothing after redirecting to /login.
func (g *Guard) Render(ctx context.Context, w io.Writer) error {
	if err := g.Check(ctx); err != nil {
		return nil
	}
	return g.view.Render(ctx, w)
}
