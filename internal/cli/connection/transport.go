package connection

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/logger"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// authTransport attaches the stored credential to requests for the API
// host. Redirect hops to any other host go out without it.
type authTransport struct {
	next   http.RoundTripper
	store  storage.TokenStore
	host   string
	logger *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.EqualFold(req.URL.Host, t.host) {
		return t.next.RoundTrip(req)
	}

	cred, err := t.store.Get(req.Context())
	if err != nil {
		t.logger.Warn("failed to read credential, sending unauthenticated", "error", err)
		return t.next.RoundTrip(req)
	}
	if cred.IsZero() {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+cred.String())
	return t.next.RoundTrip(r)
}

// authFailureTransport hands 401 responses to the policy. The response is
// passed through untouched so the caller still sees the failure.
type authFailureTransport struct {
	next   http.RoundTripper
	policy *AuthFailurePolicy
}

func (t *authFailureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusUnauthorized && t.policy != nil {
		t.policy.OnAuthFailure(req.Context())
	}
	return resp, err
}

// rateLimitTransport throttles outgoing requests.
type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

// metricsTransport records request count and latency.
type metricsTransport struct {
	next    http.RoundTripper
	metrics *metric.Registry
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := 0
	if err == nil {
		status = resp.StatusCode
	}
	t.metrics.ObserveRequest(req.Method, req.URL.Path, status, time.Since(start))
	return resp, err
}

// requestIDTransport tags each request with a ULID and logs the exchange.
type requestIDTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = ulid.Make().String()
	}

	ctx := logger.WithRequestID(req.Context(), id)
	r := req.Clone(ctx)
	r.Header.Set(RequestIDHeader, id)

	start := time.Now()
	t.logger.Debug("api request",
		"request_id", id,
		"method", r.Method,
		"path", r.URL.Path,
	)

	resp, err := t.next.RoundTrip(r)
	if err != nil {
		t.logger.Debug("api request failed",
			"request_id", id,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, err
	}

	t.logger.Debug("api response",
		"request_id", id,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
