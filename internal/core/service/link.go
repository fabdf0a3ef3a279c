package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// LinkService creates and lists short links for the current user.
type LinkService struct {
	client APIClient
}

// NewLinkService creates a new LinkService.
func NewLinkService(client APIClient) *LinkService {
	return &LinkService{client: client}
}

type shortenRequest struct {
	LongURL string `json:"longUrl"`
}

// CreateLink shortens longURL. Errors are returned unmodified.
func (s *LinkService) CreateLink(ctx context.Context, longURL string) (domain.CreatedLink, error) {
	var out domain.CreatedLink
	if err := s.client.Do(ctx, http.MethodPost, PathShorten, shortenRequest{LongURL: longURL}, &out); err != nil {
		return domain.CreatedLink{}, err
	}
	return out, nil
}

// ListLinks returns the user's links in backend order.
func (s *LinkService) ListLinks(ctx context.Context) ([]domain.LinkItem, error) {
	var out []domain.LinkItem
	if err := s.client.Do(ctx, http.MethodGet, PathLinks, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LinkItem{}
	}
	return out, nil
}

// ShortURL builds the public address of code.
func (s *LinkService) ShortURL(code string) string {
	return strings.TrimRight(s.client.BaseURL(), "/") + "/" + code
}
