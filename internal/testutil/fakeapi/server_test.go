package fakeapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_LoginFlow(t *testing.T) {
	s := New(t)
	s.AddUser("Ada", "ada@example.com", "password1")

	resp, err := http.Post(s.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"email":"ada@example.com","password":"password1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(s.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, 2, s.Count("/api/v1/auth/login"))
}

func TestServer_ProtectedRoutes(t *testing.T) {
	s := New(t)

	resp, err := http.Get(s.URL + "/api/v1/links")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := s.IssueToken("ada@example.com")
	req, err := http.NewRequest(http.MethodGet, s.URL+"/api/v1/links", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token.String())

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, "Bearer "+token.String(), reqs[1].Authorization)
}

func TestServer_Fail(t *testing.T) {
	s := New(t)
	s.Fail("/api/v1/auth/register", http.StatusInternalServerError, `{"message":"db down"}`)

	resp, err := http.Post(s.URL+"/api/v1/auth/register", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
