package view

import (
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// Router tracks the current route and a history stack.
// It is safe for concurrent use.
type Router struct {
	mu        sync.RWMutex
	history   []domain.Route
	listeners []func(domain.Route)
}

// NewRouter creates a router positioned at start. Unknown routes start at
// the home screen.
func NewRouter(start domain.Route) *Router {
	if !start.Known() {
		start = domain.RouteHome
	}
	return &Router{history: []domain.Route{start}}
}

// Path returns the current route.
func (r *Router) Path() domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history[len(r.history)-1]
}

// Navigate pushes route onto the history. Unknown routes replace the
// current entry with the home screen instead.
func (r *Router) Navigate(route domain.Route) {
	if !route.Known() {
		r.Replace(domain.RouteHome)
		return
	}
	r.mu.Lock()
	r.history = append(r.history, route)
	r.mu.Unlock()
	r.notify(route)
}

// Replace swaps the current history entry for route.
func (r *Router) Replace(route domain.Route) {
	if !route.Known() {
		route = domain.RouteHome
	}
	r.mu.Lock()
	r.history[len(r.history)-1] = route
	r.mu.Unlock()
	r.notify(route)
}

// Back pops the current entry. It reports false at the first entry.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return false
	}
	r.history = r.history[:len(r.history)-1]
	route := r.history[len(r.history)-1]
	r.mu.Unlock()
	r.notify(route)
	return true
}

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Route(nil), r.history...)
}

// OnChange registers fn to run after every route change.
func (r *Router) OnChange(fn func(domain.Route)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *Router) notify(route domain.Route) {
	r.mu.RLock()
	listeners := append([]func(domain.Route){}, r.listeners...)
	r.mu.RUnlock()
	for _, fn := range listeners {
		fn(route)
	}
}
