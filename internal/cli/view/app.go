package view

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/yndnr/shurlty-go/internal/cli/form"
	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// LinkService creates and lists links and builds display URLs.
type LinkService interface {
	form.LinkCreator
	form.LinkLister
	ShortURL(code string) string
}

// Deps are the collaborators of an App.
type Deps struct {
	Store   storage.TokenStore
	Auth    form.Authenticator
	Links   LinkService
	Metrics *metric.Registry
	Logger  *slog.Logger
}

// App composes the navbar and the screen for the current route.
type App struct {
	router *Router
	store  storage.TokenStore
	links  LinkService
	logger *slog.Logger

	login    *form.LoginForm
	register *form.RegisterForm
	create   *form.CreateLinkForm
	page     *form.LinksPage
	guard    *Guard

	views map[domain.Route]View
	stale atomic.Bool
}

// NewApp wires the forms and screens around router.
func NewApp(router *Router, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts := []form.Option{form.WithMetrics(deps.Metrics)}

	a := &App{
		router:   router,
		store:    deps.Store,
		links:    deps.Links,
		logger:   logger,
		login:    form.NewLoginForm(deps.Auth, deps.Store, router, opts...),
		register: form.NewRegisterForm(deps.Auth, router, opts...),
		create:   form.NewCreateLinkForm(deps.Links, opts...),
		page:     form.NewLinksPage(deps.Links),
	}
	a.page.Attach(a.create)
	a.create.OnCreated(func(context.Context) { a.stale.Store(false) })

	links := LinksView(a.create, a.page, deps.Links.ShortURL, a.reloadIfStale)
	a.guard = NewGuard(deps.Store, router, links)
	a.views = map[domain.Route]View{
		domain.RouteHome:     HomeView(deps.Store),
		domain.RouteLogin:    LoginView(a.login, a.register),
		domain.RouteRegister: RegisterView(a.register),
		domain.RouteLinks:    a.guard,
	}

	// Entering /links loads the list once, like mounting the page.
	a.stale.Store(router.Path() == domain.RouteLinks)
	router.OnChange(func(r domain.Route) {
		if r == domain.RouteLinks {
			a.stale.Store(true)
		}
	})
	return a
}

// Router returns the app router.
func (a *App) Router() *Router { return a.router }

// LoginForm returns the login form.
func (a *App) LoginForm() *form.LoginForm { return a.login }

// RegisterForm returns the registration form.
func (a *App) RegisterForm() *form.RegisterForm { return a.register }

// CreateForm returns the create-link form.
func (a *App) CreateForm() *form.CreateLinkForm { return a.create }

// LinksPage returns the links page state.
func (a *App) LinksPage() *form.LinksPage { return a.page }

// Guard returns the guard protecting /links.
func (a *App) Guard() *Guard { return a.guard }

// Logout clears the session and shows the login screen.
func (a *App) Logout(ctx context.Context) error {
	return Logout(ctx, a.store, a.router)
}

// Refresh reloads the links list.
func (a *App) Refresh(ctx context.Context) error {
	a.stale.Store(false)
	return a.page.Load(ctx)
}

// Render draws the navbar and the current screen. Protected routes are
// checked first so the navbar reflects any redirect.
func (a *App) Render(ctx context.Context, w io.Writer) error {
	if a.router.Path().Protected() {
		_ = a.guard.Check(ctx)
	}
	path := a.router.Path()

	if err := RenderNavbar(w, NavItems(ctx, a.store), path); err != nil {
		return err
	}
	fmt.Fprintln(w)

	v, ok := a.views[path]
	if !ok {
		a.router.Replace(domain.RouteHome)
		v = a.views[domain.RouteHome]
	}
	return v.Render(ctx, w)
}

func (a *App) reloadIfStale(ctx context.Context) {
	if !a.stale.CompareAndSwap(true, false) {
		return
	}
	if err := a.page.Load(ctx); err != nil {
		a.logger.Debug("load links failed", "error", err)
	}
}
