package form

import (
	"context"
	"strings"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// Authenticator performs the auth calls behind the login and registration
// forms.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (domain.RegisterResult, error)
}

// LoginForm drives the login screen.
type LoginForm struct {
	machine

	auth  Authenticator
	store storage.TokenStore
	nav   Navigator

	fieldsMu sync.Mutex
	email    string
	password string
}

// NewLoginForm creates a login form.
func NewLoginForm(auth Authenticator, store storage.TokenStore, nav Navigator, opts ...Option) *LoginForm {
	f := &LoginForm{auth: auth, store: store, nav: nav}
	f.init("login", opts)
	return f
}

// SetEmail sets the email field.
func (f *LoginForm) SetEmail(v string) {
	f.fieldsMu.Lock()
	f.email = v
	f.fieldsMu.Unlock()
}

// SetPassword sets the password field.
func (f *LoginForm) SetPassword(v string) {
	f.fieldsMu.Lock()
	f.password = v
	f.fieldsMu.Unlock()
}

// Submit validates the fields and logs in. On success the credential is
// stored and the UI moves to /links; on failure the store is untouched.
func (f *LoginForm) Submit(ctx context.Context) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	f.fieldsMu.Lock()
	email, password := f.email, f.password
	f.fieldsMu.Unlock()

	if strings.TrimSpace(email) == "" {
		return f.invalid("Email is required")
	}
	if strings.TrimSpace(password) == "" {
		return f.invalid("Password is required")
	}

	f.submitting()
	res, err := f.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return f.failed(ctx, domain.MessageOf(err, "Login failed"), err)
	}

	if err := f.store.Set(ctx, res.Token); err != nil {
		return f.failed(ctx, domain.MessageOf(err, "Login failed"), err)
	}

	f.succeeded()
	f.nav.Navigate(domain.RouteLinks)
	return nil
}
