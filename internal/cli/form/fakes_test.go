package form

import (
	"context"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

type loginCall struct{ email, password string }

type registerCall struct{ name, email, password string }

// fakeAuth records calls and answers with canned results. When gate is
// set, calls block until it is closed.
type fakeAuth struct {
	mu        sync.Mutex
	logins    []loginCall
	registers []registerCall

	token     domain.Credential
	loginErr  error
	regResult domain.RegisterResult
	regErr    error

	gate    chan struct{}
	entered chan struct{}
}

func (a *fakeAuth) wait(ctx context.Context) {
	if a.entered != nil {
		a.entered <- struct{}{}
	}
	if a.gate != nil {
		select {
		case <-a.gate:
		case <-ctx.Done():
		}
	}
}

func (a *fakeAuth) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	a.mu.Lock()
	a.logins = append(a.logins, loginCall{email, password})
	a.mu.Unlock()
	a.wait(ctx)
	if a.loginErr != nil {
		return domain.LoginResult{}, a.loginErr
	}
	return domain.LoginResult{Token: a.token}, nil
}

func (a *fakeAuth) Register(ctx context.Context, name, email, password string) (domain.RegisterResult, error) {
	a.mu.Lock()
	a.registers = append(a.registers, registerCall{name, email, password})
	a.mu.Unlock()
	a.wait(ctx)
	if a.regErr != nil {
		return domain.RegisterResult{}, a.regErr
	}
	return a.regResult, nil
}

func (a *fakeAuth) loginCalls() []loginCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]loginCall(nil), a.logins...)
}

func (a *fakeAuth) registerCalls() []registerCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]registerCall(nil), a.registers...)
}

type fakeNav struct {
	mu     sync.Mutex
	routes []domain.Route
}

func (n *fakeNav) Navigate(r domain.Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func (n *fakeNav) visited() []domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Route(nil), n.routes...)
}

type fakeLinks struct {
	mu      sync.Mutex
	created []string
	lists   int

	result  domain.CreatedLink
	err     error
	items   []domain.LinkItem
	listErr error
}

func (l *fakeLinks) CreateLink(_ context.Context, longURL string) (domain.CreatedLink, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.created = append(l.created, longURL)
	if l.err != nil {
		return domain.CreatedLink{}, l.err
	}
	return l.result, nil
}

func (l *fakeLinks) ListLinks(context.Context) ([]domain.LinkItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lists++
	if l.listErr != nil {
		return nil, l.listErr
	}
	return l.items, nil
}
