package form

import (
	"context"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// MinPasswordLength is the shortest password the registration form sends,
// counted in UTF-16 code units like a browser's string length.
const MinPasswordLength = 8

func passwordLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// RegisterForm drives the registration screen. It never touches the
// token store: a new account still has to log in.
type RegisterForm struct {
	machine

	auth Authenticator
	nav  Navigator

	fieldsMu sync.Mutex
	name     string
	email    string
	password string
	message  string
}

// NewRegisterForm creates a registration form.
func NewRegisterForm(auth Authenticator, nav Navigator, opts ...Option) *RegisterForm {
	f := &RegisterForm{auth: auth, nav: nav}
	f.init("register", opts)
	return f
}

// SetName sets the name field.
func (f *RegisterForm) SetName(v string) {
	f.fieldsMu.Lock()
	f.name = v
	f.fieldsMu.Unlock()
}

// SetEmail sets the email field.
func (f *RegisterForm) SetEmail(v string) {
	f.fieldsMu.Lock()
	f.email = v
	f.fieldsMu.Unlock()
}

// SetPassword sets the password field.
func (f *RegisterForm) SetPassword(v string) {
	f.fieldsMu.Lock()
	f.password = v
	f.fieldsMu.Unlock()
}

// Message returns the backend confirmation of the last successful
// registration.
func (f *RegisterForm) Message() string {
	f.fieldsMu.Lock()
	defer f.fieldsMu.Unlock()
	return f.message
}

// Submit validates the fields and registers the account. On success the
// UI moves to /login.
func (f *RegisterForm) Submit(ctx context.Context) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	f.fieldsMu.Lock()
	name, email, password := f.name, f.email, f.password
	f.message = ""
	f.fieldsMu.Unlock()

	switch {
	case strings.TrimSpace(name) == "":
		return f.invalid("Name is required")
	case strings.TrimSpace(email) == "":
		return f.invalid("Email is required")
	case strings.TrimSpace(password) == "":
		return f.invalid("Password is required")
	case passwordLength(password) < MinPasswordLength:
		return f.invalid("Password must be at least 8 characters")
	}

	f.submitting()
	res, err := f.auth.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return f.failed(ctx, domain.MessageOf(err, "Registration failed"), err)
	}

	f.fieldsMu.Lock()
	f.message = res.Message
	f.fieldsMu.Unlock()

	f.succeeded()
	f.nav.Navigate(domain.RouteLogin)
	return nil
}
