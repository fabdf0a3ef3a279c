package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/yndnr/shurlty-go/internal/cli/output"
	"github.com/yndnr/shurlty-go/internal/core/domain"
)

type command struct {
	name  string
	args  string
	usage string
	run   func(r *REPL, ctx context.Context, args []string) error
}

var commandTable = []command{
	{"home", "", "Show the home screen", (*REPL).cmdHome},
	{"login", "[EMAIL]", "Log in", (*REPL).cmdLogin},
	{"register", "", "Create an account", (*REPL).cmdRegister},
	{"links", "", "Show your links", (*REPL).cmdLinks},
	{"shorten", "URL", "Create a short link", (*REPL).cmdShorten},
	{"refresh", "", "Reload your links", (*REPL).cmdRefresh},
	{"qr", "CODE", "Print a QR code for a short link", (*REPL).cmdQR},
	{"logout", "", "Log out", (*REPL).cmdLogout},
	{"back", "", "Go to the previous screen", (*REPL).cmdBack},
	{"metrics", "", "Print client metrics", (*REPL).cmdMetrics},
	{"help", "", "Show this help", (*REPL).cmdHelp},
}

func (r *REPL) cmdHome(ctx context.Context, _ []string) error {
	r.app.Router().Navigate(domain.RouteHome)
	return r.render(ctx)
}

func (r *REPL) cmdLinks(ctx context.Context, _ []string) error {
	r.app.Router().Navigate(domain.RouteLinks)
	return r.render(ctx)
}

func (r *REPL) cmdBack(ctx context.Context, _ []string) error {
	if !r.app.Router().Back() {
		return errors.New("no previous screen")
	}
	return r.render(ctx)
}

func (r *REPL) cmdLogin(ctx context.Context, args []string) error {
	r.app.Router().Navigate(domain.RouteLogin)

	var preset string
	if len(args) > 0 {
		preset = args[0]
	}
	email, err := r.prompt.Value(preset, "Email: ", false)
	if err != nil {
		return err
	}
	password, err := r.prompt.Secret("Password: ")
	if err != nil {
		return err
	}

	f := r.app.LoginForm()
	f.SetEmail(email)
	f.SetPassword(password)
	r.submit(ctx, "Logging in...", f.Submit)
	return r.render(ctx)
}

func (r *REPL) cmdRegister(ctx context.Context, _ []string) error {
	r.app.Router().Navigate(domain.RouteRegister)

	name, err := r.prompt.Line("Name: ")
	if err != nil {
		return err
	}
	email, err := r.prompt.Line("Email: ")
	if err != nil {
		return err
	}
	password, err := r.prompt.Secret("Password: ")
	if err != nil {
		return err
	}

	f := r.app.RegisterForm()
	f.SetName(name)
	f.SetEmail(email)
	f.SetPassword(password)
	r.submit(ctx, "Registering...", f.Submit)
	return r.render(ctx)
}

func (r *REPL) cmdShorten(ctx context.Context, args []string) error {
	if !r.onLinks(ctx) {
		return r.render(ctx)
	}
	f := r.app.CreateForm()
	f.SetURL(strings.Join(args, " "))
	r.submit(ctx, "Creating...", f.Submit)
	return r.render(ctx)
}

func (r *REPL) cmdRefresh(ctx context.Context, _ []string) error {
	if !r.onLinks(ctx) {
		return r.render(ctx)
	}
	r.submit(ctx, "Loading links...", r.app.Refresh)
	return r.render(ctx)
}

func (r *REPL) cmdQR(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: qr CODE")
	}
	if err := r.app.Guard().Check(ctx); err != nil {
		return r.render(ctx)
	}

	url := r.links.ShortURL(args[0])
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, q.ToSmallString(false))
	fmt.Fprintln(r.out, url)
	return nil
}

func (r *REPL) cmdLogout(ctx context.Context, _ []string) error {
	if err := r.app.Logout(ctx); err != nil {
		return err
	}
	return r.render(ctx)
}

func (r *REPL) cmdMetrics(_ context.Context, _ []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics.WriteText(r.out)
}

func (r *REPL) cmdHelp(_ context.Context, _ []string) error {
	t := &output.Table{}
	t.SetHeaders("COMMAND", "DESCRIPTION")
	for _, cmd := range r.order {
		t.AddRow(strings.TrimSpace(cmd.name+" "+cmd.args), cmd.usage)
	}
	t.AddRow("exit, quit", "Leave")

	r.mu.Lock()
	defer r.mu.Unlock()
	return t.Render(r.out)
}

// onLinks moves to /links when a credential is stored. Otherwise the
// guard has already redirected to /login.
func (r *REPL) onLinks(ctx context.Context) bool {
	if err := r.app.Guard().Check(ctx); err != nil {
		return false
	}
	if r.app.Router().Path() != domain.RouteLinks {
		r.app.Router().Navigate(domain.RouteLinks)
	}
	return true
}

func (r *REPL) submit(ctx context.Context, message string, fn func(context.Context) error) {
	sp := output.NewSpinner(r.out, message)
	sp.Start()
	err := fn(ctx)
	sp.Stop()
	if err != nil {
		r.logger.Debug("command failed", "error", err)
	}
}
