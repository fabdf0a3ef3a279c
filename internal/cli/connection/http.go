package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/shurlty-go/internal/infra/buildinfo"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// HTTPClient provides HTTP communication with the shortener API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

type clientOptions struct {
	timeout   time.Duration
	tlsConfig *tls.Config
	rateLimit float64
	rateBurst int
	metrics   *metric.Registry
	logger    *slog.Logger
	policy    *AuthFailurePolicy
	transport http.RoundTripper
}

// Option configures an HTTPClient.
type Option func(*clientOptions)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithTLSConfig sets the TLS configuration of the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *clientOptions) { o.tlsConfig = cfg }
}

// WithRateLimit throttles requests to r per second with the given burst.
// r <= 0 disables throttling.
func WithRateLimit(r float64, burst int) Option {
	return func(o *clientOptions) {
		o.rateLimit = r
		o.rateBurst = burst
	}
}

// WithMetrics records request metrics into reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(o *clientOptions) { o.metrics = reg }
}

// WithLogger sets the logger used by the transports.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithAuthFailurePolicy installs the policy applied to 401 responses.
func WithAuthFailurePolicy(p *AuthFailurePolicy) Option {
	return func(o *clientOptions) { o.policy = p }
}

// WithTransport replaces the innermost transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// NewHTTPClient creates a new HTTP client. The credential is read from
// store on every request, never cached.
func NewHTTPClient(server string, store storage.TokenStore, opts ...Option) *HTTPClient {
	o := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	// Ensure baseURL has http:// prefix
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	base := o.transport
	if base == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if o.tlsConfig != nil {
			t.TLSClientConfig = o.tlsConfig
		}
		base = t
	}

	host := ""
	if u, err := url.Parse(baseURL); err == nil {
		host = u.Host
	}

	// Order, outermost first: request ID, rate limit, metrics, 401 policy,
	// auth. Metrics sit inside the limiter so latency excludes throttling.
	var rt http.RoundTripper = &authTransport{next: base, store: store, host: host, logger: o.logger}
	rt = &authFailureTransport{next: rt, policy: o.policy}
	if o.metrics != nil {
		rt = &metricsTransport{next: rt, metrics: o.metrics}
	}
	if o.rateLimit > 0 {
		burst := o.rateBurst
		if burst < 1 {
			burst = 1
		}
		rt = &rateLimitTransport{next: rt, limiter: rate.NewLimiter(rate.Limit(o.rateLimit), burst)}
	}
	rt = &requestIDTransport{next: rt, logger: o.logger}

	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Transport: rt,
			Timeout:   o.timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Do sends a request and decodes a successful JSON response into target.
// Responses with status >= 400 become *APIError.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, target any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	return ParseResponse(resp, target)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	return c.client.Do(req)
}

// BaseURL returns the base URL of the client without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ParseResponse parses a JSON response body into the target struct.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		// A non-JSON error body leaves the fields empty.
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
