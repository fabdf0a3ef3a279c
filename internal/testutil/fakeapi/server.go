// Package fakeapi is an in-memory stand-in for the shortener backend used
// by tests. It implements the four JSON endpoints the client talks to and
// lets tests force failures and hold requests in flight.
package fakeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// LinkTTL is how long created links stay valid.
const LinkTTL = 30 * 24 * time.Hour

// Request is a recorded incoming request.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

type user struct {
	id       int64
	name     string
	password string
}

type failure struct {
	status int
	body   string
}

// Server is a fake shortener API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]user              // by email
	tokens   map[string]string            // token -> email
	links    map[string][]domain.LinkItem // by email
	failures map[string]failure           // by path
	requests []Request
	hold     chan struct{}
	arrived  chan string
	nextID   int64
	seq      int
}

// New starts a fake API that is shut down when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]user),
		tokens:   make(map[string]string),
		links:    make(map[string][]domain.LinkItem),
		failures: make(map[string]failure),
		arrived:  make(chan string, 64),
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/api/v1/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/shorten", s.requireAuth(s.handleShorten)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/links", s.requireAuth(s.handleLinks)).Methods(http.MethodGet)
	r.HandleFunc("/{code}", s.handleRedirect).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		s.Release()
		s.Server.Close()
	})
	return s
}

// AddUser registers an account directly.
func (s *Server) AddUser(name, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.users[email] = user{id: s.nextID, name: name, password: password}
}

// IssueToken returns a valid token for email without a login request.
func (s *Server) IssueToken(email string) domain.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Credential(s.issueLocked(email))
}

// Revoke invalidates token so later requests get 401.
func (s *Server) Revoke(token domain.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token.String())
}

// Fail makes every request to path answer status with a raw body.
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// Hold blocks every request after it is recorded until Release.
func (s *Server) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hold == nil {
		s.hold = make(chan struct{})
	}
}

// Release unblocks held requests.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hold != nil {
		close(s.hold)
		s.hold = nil
	}
}

// Arrived yields the path of each request as it is recorded.
func (s *Server) Arrived() <-chan string {
	return s.arrived
}

// Requests returns the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit path.
func (s *Server) Count(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		hold := s.hold
		f, failing := s.failures[r.URL.Path]
		s.mu.Unlock()

		select {
		case s.arrived <- r.URL.Path:
		default:
		}

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		email, valid := s.tokens[token]
		s.mu.Unlock()
		if !ok || !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r.WithContext(withEmail(r.Context(), email)))
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name, email and password are required"})
		return
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already registered"})
		return
	}
	s.nextID++
	id := s.nextID
	s.users[req.Email] = user{id: id, name: req.Name, password: req.Password}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered successfully", "userId": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	if !ok || u.password != req.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	token := s.issueLocked(req.Email)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LongURL string `json:"longUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LongURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "URL is required"})
		return
	}

	email := emailFrom(r.Context())
	now := time.Now().UTC().Truncate(time.Second)

	s.mu.Lock()
	s.seq++
	code := fmt.Sprintf("c%05d", s.seq)
	item := domain.LinkItem{
		Code:      code,
		LongURL:   req.LongURL,
		CreatedAt: now,
		ExpiresAt: now.Add(LinkTTL),
	}
	s.links[email] = append(s.links[email], item)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, domain.CreatedLink{
		Code:      code,
		ShortURL:  s.URL + "/" + code,
		ExpiresAt: item.ExpiresAt,
	})
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	email := emailFrom(r.Context())

	s.mu.Lock()
	items := append([]domain.LinkItem{}, s.links[email]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, items := range s.links {
		for _, it := range items {
			if it.Code == code {
				http.Redirect(w, r, it.LongURL, http.StatusFound)
				return
			}
		}
	}
	http.NotFound(w, r)
}

func (s *Server) issueLocked(email string) string {
	s.seq++
	token := fmt.Sprintf("tok-%d", s.seq)
	s.tokens[token] = email
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type emailKey struct{}

func withEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

func emailFrom(ctx context.Context) string {
	email, _ := ctx.Value(emailKey{}).(string)
	return email
}
