package view

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yndnr/shurlty-go/internal/cli/form"
	"github.com/yndnr/shurlty-go/internal/cli/output"
	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// Messages shown by the links table.
const (
	LoadingLinksText = "Loading links…"
	EmptyLinksText   = "No links yet — create one above."
)

type feature struct {
	icon, title, blurb string
}

var features = []feature{
	{"⚡", "Fast", "Redirects are served quickly with minimal overhead."},
	{"🔒", "Secure", "Your links are tied to your account behind token authentication."},
	{"📊", "Reliable", "Links keep working until they expire."},
}

// HomeView renders the landing screen.
func HomeView(store storage.TokenStore) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Shorten URLs. Share smarter.")
		fmt.Fprintln(w, "Create clean, short, and reliable links with built-in security and fast redirects.")
		fmt.Fprintln(w)
		if storage.Authenticated(ctx, store) {
			fmt.Fprintln(w, "  View My Links  (links)")
		} else {
			fmt.Fprintln(w, "  Get Started  (register)")
			fmt.Fprintln(w, "  Login        (login)")
		}
		fmt.Fprintln(w)
		for _, f := range features {
			if _, err := fmt.Fprintf(w, "%s %s: %s\n", f.icon, f.title, f.blurb); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoginView renders the login screen and the last login error.
func LoginView(login *form.LoginForm, register *form.RegisterForm) View {
	return ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Login")
		if register != nil && register.State() == form.StateSuccess && register.Message() != "" {
			fmt.Fprintln(w, register.Message())
		}
		if msg := login.Err(); msg != "" {
			fmt.Fprintf(w, "Error: %s\n", msg)
		}
		_, err := fmt.Fprintln(w, "Don't have an account? Type 'register'.")
		return err
	})
}

// RegisterView renders the registration screen and the last error.
func RegisterView(register *form.RegisterForm) View {
	return ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Register")
		fmt.Fprintf(w, "Passwords need at least %d characters.\n", form.MinPasswordLength)
		if msg := register.Err(); msg != "" {
			fmt.Fprintf(w, "Error: %s\n", msg)
		}
		_, err := fmt.Fprintln(w, "Already have an account? Type 'login'.")
		return err
	})
}

// LinksView renders the create-link result and the links table.
// reload runs before drawing when it is non-nil.
func LinksView(create *form.CreateLinkForm, page *form.LinksPage, shortURL func(string) string, reload func(context.Context)) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		if reload != nil {
			reload(ctx)
		}
		fmt.Fprintln(w, "Create a short link: shorten <long-url>")
		if msg := create.Err(); msg != "" {
			fmt.Fprintf(w, "Error: %s\n", msg)
		}
		if c := create.Created(); c != nil {
			fmt.Fprintf(w, "Short URL: %s\n", c.ShortURL)
			fmt.Fprintf(w, "Expires: %s\n", c.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(w)
		return RenderLinksTable(w, page.Items(), page.Loading(), page.Err(), shortURL)
	})
}

// RenderLinksTable writes the links table. Loading and error states
// replace the table entirely.
func RenderLinksTable(w io.Writer, items []domain.LinkItem, loading bool, errMsg string, shortURL func(string) string) error {
	if loading {
		_, err := fmt.Fprintln(w, LoadingLinksText)
		return err
	}
	if errMsg != "" {
		_, err := fmt.Fprintln(w, errMsg)
		return err
	}

	t := &output.Table{}
	t.SetHeaders("SHORT URL", "LONG URL", "EXPIRES")
	if len(items) == 0 {
		t.AddRow(EmptyLinksText)
		return t.Render(w)
	}
	for _, it := range items {
		t.AddRow(shortURL(it.Code), it.LongURL, formatDate(it.ExpiresAt))
	}
	return t.Render(w)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
