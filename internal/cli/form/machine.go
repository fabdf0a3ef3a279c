package form

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/telemetry/logger"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// State is the lifecycle position of a form.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Navigator moves the UI to another route, adding a history entry.
type Navigator interface {
	Navigate(route domain.Route)
}

// Option configures a form.
type Option func(*machine)

// WithMetrics records submission outcomes into reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(m *machine) { m.metrics = reg }
}

// machine holds the state shared by every form.
type machine struct {
	name     string
	inFlight atomic.Bool

	mu    sync.RWMutex
	state State
	err   string

	metrics *metric.Registry
}

func (m *machine) init(name string, opts []Option) {
	m.name = name
	for _, opt := range opts {
		opt(m)
	}
}

// State returns the current state.
func (m *machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the message to display, or "" when there is none.
func (m *machine) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Busy reports whether a submission is outstanding.
func (m *machine) Busy() bool {
	return m.inFlight.Load()
}

// begin claims the form for one submission and clears the previous error.
func (m *machine) begin() error {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.metrics.ObserveSubmission(m.name, metric.OutcomeRejected)
		return domain.ErrSubmitInFlight
	}
	m.set(StateValidating, "")
	return nil
}

func (m *machine) end() {
	m.inFlight.Store(false)
}

func (m *machine) set(state State, msg string) {
	m.mu.Lock()
	m.state = state
	m.err = msg
	m.mu.Unlock()
}

// invalid ends validation with msg. Nothing was sent.
func (m *machine) invalid(msg string) error {
	m.set(StateIdle, msg)
	m.metrics.ObserveSubmission(m.name, metric.OutcomeInvalid)
	return domain.ErrValidation.WithMessage(msg)
}

// submitting marks the request as sent.
func (m *machine) submitting() {
	m.set(StateSubmitting, "")
}

// failed returns the form to Idle showing msg. It logs through the
// logger carried by ctx.
func (m *machine) failed(ctx context.Context, msg string, cause error) error {
	m.set(StateIdle, msg)
	m.metrics.ObserveSubmission(m.name, metric.OutcomeFailure)
	logger.L(ctx).Debug("form submission failed", "form", m.name, "error", cause)

	if domain.IsDomainError(cause, "") {
		return cause
	}
	return domain.ErrBackend.WithMessage(msg).WithCause(cause)
}

func (m *machine) succeeded() {
	m.set(StateSuccess, "")
	m.metrics.ObserveSubmission(m.name, metric.OutcomeSuccess)
}
