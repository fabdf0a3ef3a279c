package domain

import "time"

// LinkItem is a short link owned by the current user.
//
// Created server-side; read-only on the client.
type LinkItem struct {
	Code      string    `json:"code" yaml:"code"`
	ShortURL  string    `json:"shortUrl,omitempty" yaml:"shortUrl,omitempty" table:"-"`
	LongURL   string    `json:"longUrl" yaml:"longUrl"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" yaml:"expiresAt"`
}

// CreatedLink is the backend response to a successful shorten request.
type CreatedLink struct {
	Code      string    `json:"code" yaml:"code"`
	ShortURL  string    `json:"shortUrl" yaml:"shortUrl"`
	ExpiresAt time.Time `json:"expiresAt" yaml:"expiresAt"`
}
