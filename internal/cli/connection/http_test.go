package connection

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/infra/buildinfo"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// fakeNavigator records route replacements.
type fakeNavigator struct {
	mu       sync.Mutex
	path     domain.Route
	replaced []domain.Route
}

func (n *fakeNavigator) Path() domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *fakeNavigator) Replace(r domain.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = r
	n.replaced = append(n.replaced, r)
}

func (n *fakeNavigator) Replaced() []domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Route(nil), n.replaced...)
}

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name       string
		server     string
		wantPrefix string
	}{
		{"with http prefix", "http://localhost:8080", "http://localhost:8080"},
		{"with https prefix", "https://sho.rt", "https://sho.rt"},
		{"without prefix", "localhost:8080", "http://localhost:8080"},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(tt.server, storage.NewMemoryTokenStore())
			if client.BaseURL() != tt.wantPrefix {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantPrefix)
			}
		})
	}
}

func TestHTTPClient_BearerHeader(t *testing.T) {
	var gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := context.Background()
	store := storage.NewMemoryTokenStore()
	client := NewHTTPClient(server.URL, store)

	// No credential: header absent.
	if err := client.Do(ctx, http.MethodGet, "/api/v1/links", nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	// Credential stored after construction is picked up by the next request.
	if err := store.Set(ctx, "tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := client.Do(ctx, http.MethodGet, "/api/v1/links", nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := client.Do(ctx, http.MethodGet, "/api/v1/links", nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	want := []string{"", "Bearer tok-1", ""}
	for i := range want {
		if gotAuth[i] != want[i] {
			t.Errorf("request %d Authorization = %q, want %q", i, gotAuth[i], want[i])
		}
	}
}

func TestHTTPClient_RedirectDropsBearerOffHost(t *testing.T) {
	var mu sync.Mutex
	var otherAuth string
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		otherAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer other.Close()

	var apiAuth []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		apiAuth = append(apiAuth, r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.URL.Path {
		case "/away":
			http.Redirect(w, r, other.URL+"/landing", http.StatusFound)
		case "/here":
			http.Redirect(w, r, "/final", http.StatusFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer api.Close()

	ctx := context.Background()
	store := storage.NewMemoryTokenStore()
	if err := store.Set(ctx, "secret-jwt"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	client := NewHTTPClient(api.URL, store)

	if err := client.Do(ctx, http.MethodGet, "/away", nil, nil); err != nil {
		t.Fatalf("Do(/away) error = %v", err)
	}
	mu.Lock()
	if otherAuth != "" {
		t.Errorf("redirect target received Authorization = %q, want none", otherAuth)
	}
	mu.Unlock()

	if err := client.Do(ctx, http.MethodGet, "/here", nil, nil); err != nil {
		t.Fatalf("Do(/here) error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	want := []string{"Bearer secret-jwt", "Bearer secret-jwt", "Bearer secret-jwt"}
	if len(apiAuth) != len(want) {
		t.Fatalf("API saw %d requests, want %d", len(apiAuth), len(want))
	}
	for i := range want {
		if apiAuth[i] != want[i] {
			t.Errorf("API request %d Authorization = %q, want %q", i, apiAuth[i], want[i])
		}
	}
}

func TestHTTPClient_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("User-Agent"); got != buildinfo.UserAgent() {
			t.Errorf("User-Agent = %q, want %q", got, buildinfo.UserAgent())
		}
		if got := r.Header.Get(RequestIDHeader); len(got) != 26 {
			t.Errorf("%s = %q, want a ULID", RequestIDHeader, got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, storage.NewMemoryTokenStore())
	resp, err := client.Get(context.Background(), "/api/v1/links")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()
}

func TestHTTPClient_Post(t *testing.T) {
	type requestBody struct {
		LongURL string `json:"longUrl"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body.LongURL != "https://example.com" {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"code":"abc"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, storage.NewMemoryTokenStore())

	var out struct {
		Code string `json:"code"`
	}
	err := client.Do(context.Background(), http.MethodPost, "/api/v1/shorten", requestBody{LongURL: "https://example.com"}, &out)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if out.Code != "abc" {
		t.Errorf("code = %q, want abc", out.Code)
	}
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid token"}`))
	}))
	defer server.Close()

	tests := []struct {
		name        string
		from        domain.Route
		wantReplace bool
	}{
		{"redirects from links", domain.RouteLinks, true},
		{"redirects from home", domain.RouteHome, true},
		{"stays on login", domain.RouteLogin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryTokenStore()
			if err := store.Set(ctx, "stale"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			nav := &fakeNavigator{path: tt.from}
			reg := metric.NewRegistry()
			policy := NewAuthFailurePolicy(store, nav, nil, reg)
			client := NewHTTPClient(server.URL, store, WithAuthFailurePolicy(policy), WithMetrics(reg))

			err := client.Do(ctx, http.MethodGet, "/api/v1/links", nil, nil)

			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if !apiErr.Unauthorized() || apiErr.Body.Error != "Invalid token" {
				t.Errorf("APIError = %+v", apiErr)
			}

			if storage.Authenticated(ctx, store) {
				t.Error("credential should be cleared after 401")
			}

			replaced := nav.Replaced()
			if tt.wantReplace {
				if len(replaced) != 1 || replaced[0] != domain.RouteLogin {
					t.Errorf("Replace calls = %v, want [/login]", replaced)
				}
			} else if len(replaced) != 0 {
				t.Errorf("Replace calls = %v, want none", replaced)
			}
		})
	}
}

func TestHTTPClient_NonAuthErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid URL"}`))
	}))
	defer server.Close()

	ctx := context.Background()
	store := storage.NewMemoryTokenStore()
	_ = store.Set(ctx, "tok")
	nav := &fakeNavigator{path: domain.RouteLinks}
	client := NewHTTPClient(server.URL, store, WithAuthFailurePolicy(NewAuthFailurePolicy(store, nav, nil, nil)))

	err := client.Do(ctx, http.MethodPost, "/api/v1/shorten", map[string]string{"longUrl": "x"}, nil)
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 APIError", err)
	}
	if !storage.Authenticated(ctx, store) {
		t.Error("credential should survive a non-401 error")
	}
	if len(nav.Replaced()) != 0 {
		t.Error("non-401 error should not navigate")
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewHTTPClient(url, storage.NewMemoryTokenStore())
	err := client.Do(context.Background(), http.MethodGet, "/api/v1/links", nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("transport error should not be an APIError")
	}
}

func TestHTTPClient_RateLimit(t *testing.T) {
	var (
		mu    sync.Mutex
		count int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, storage.NewMemoryTokenStore(), WithRateLimit(0.001, 1))

	if err := client.Do(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
		t.Fatalf("first request error = %v", err)
	}

	// The bucket is empty; a cancelled context fails before sending.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.Do(ctx, http.MethodGet, "/", nil, nil); err == nil {
		t.Error("second request should be throttled")
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("server saw %d requests, want 1", count)
	}
}

func TestHTTPClient_ThrottleNotCountedAsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := metric.NewRegistry()
	client := NewHTTPClient(server.URL, storage.NewMemoryTokenStore(),
		WithRateLimit(0.001, 1), WithMetrics(reg))

	if err := client.Do(context.Background(), http.MethodGet, "/api/v1/links", nil, nil); err != nil {
		t.Fatalf("first request error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.Do(ctx, http.MethodGet, "/api/v1/links", nil, nil); err == nil {
		t.Fatal("second request should be throttled")
	}

	if got := testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "/api/v1/links", "200")); got != 1 {
		t.Errorf("sent requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "/api/v1/links", "error")); got != 0 {
		t.Errorf("throttled request recorded as error: %v", got)
	}
	if got := testutil.CollectAndCount(reg.RequestDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestParseResponse_Error(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"error field", 400, `{"error":"URL is required"}`, "URL is required"},
		{"message field", 409, `{"message":"Email already registered"}`, "Email already registered"},
		{"error wins over message", 400, `{"error":"a","message":"b"}`, "a"},
		{"not json", 500, `not json`, "request failed with status code 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := http.Get(server.URL)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			err = ParseResponse(resp, nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestParseResponse_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var target map[string]any
	if err := ParseResponse(resp, &target); err != nil {
		t.Errorf("ParseResponse with empty body should not error: %v", err)
	}
}
