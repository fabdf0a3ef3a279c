package form

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/shurlty-go/internal/cli/connection"
	"github.com/yndnr/shurlty-go/internal/core/domain"
)

func TestLinksPage_Load(t *testing.T) {
	links := &fakeLinks{items: []domain.LinkItem{{Code: "b"}, {Code: "a"}}}
	p := NewLinksPage(links)
	assert.True(t, p.Loading())

	require.NoError(t, p.Load(context.Background()))

	assert.False(t, p.Loading())
	assert.Empty(t, p.Err())
	require.Len(t, p.Items(), 2)
	assert.Equal(t, "b", p.Items()[0].Code)
}

func TestLinksPage_LoadFailureKeepsItems(t *testing.T) {
	links := &fakeLinks{items: []domain.LinkItem{{Code: "a"}}}
	p := NewLinksPage(links)
	require.NoError(t, p.Load(context.Background()))

	links.listErr = &connection.APIError{Status: http.StatusInternalServerError}
	require.Error(t, p.Load(context.Background()))
	assert.Equal(t, "Failed to load links", p.Err())
	assert.Len(t, p.Items(), 1)

	links.listErr = &connection.APIError{Status: http.StatusBadGateway, Body: connection.ErrorBody{Error: "upstream down"}}
	require.Error(t, p.Load(context.Background()))
	assert.Equal(t, "upstream down", p.Err())

	links.listErr = errors.New("dial tcp: refused")
	require.Error(t, p.Load(context.Background()))
	assert.Equal(t, "Failed to load links", p.Err())
}

func TestLinksPage_ReloadsAfterCreate(t *testing.T) {
	links := &fakeLinks{result: domain.CreatedLink{Code: "abc"}}
	p := NewLinksPage(links)
	f := NewCreateLinkForm(links)
	p.Attach(f)

	f.SetURL("https://x.com")
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, 1, links.lists)
}
