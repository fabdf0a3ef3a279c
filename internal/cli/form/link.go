package form

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/core/service"
)

// LinkCreator shortens URLs.
type LinkCreator interface {
	CreateLink(ctx context.Context, longURL string) (domain.CreatedLink, error)
}

// CreateLinkForm drives the "shorten" input on the links screen.
type CreateLinkForm struct {
	machine

	links LinkCreator

	fieldsMu  sync.Mutex
	longURL   string
	created   *domain.CreatedLink
	onCreated []func(context.Context)
}

// NewCreateLinkForm creates a link creation form.
func NewCreateLinkForm(links LinkCreator, opts ...Option) *CreateLinkForm {
	f := &CreateLinkForm{links: links}
	f.init("create_link", opts)
	return f
}

// SetURL sets the long URL field.
func (f *CreateLinkForm) SetURL(v string) {
	f.fieldsMu.Lock()
	f.longURL = v
	f.fieldsMu.Unlock()
}

// URL returns the current long URL field.
func (f *CreateLinkForm) URL() string {
	f.fieldsMu.Lock()
	defer f.fieldsMu.Unlock()
	return f.longURL
}

// Created returns the last created link, or nil.
func (f *CreateLinkForm) Created() *domain.CreatedLink {
	f.fieldsMu.Lock()
	defer f.fieldsMu.Unlock()
	if f.created == nil {
		return nil
	}
	c := *f.created
	return &c
}

// OnCreated registers fn to run after each successful creation.
func (f *CreateLinkForm) OnCreated(fn func(context.Context)) {
	f.fieldsMu.Lock()
	f.onCreated = append(f.onCreated, fn)
	f.fieldsMu.Unlock()
}

// Submit validates the URL and creates the short link. On success the
// input is cleared and OnCreated listeners run.
func (f *CreateLinkForm) Submit(ctx context.Context) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	f.fieldsMu.Lock()
	f.created = nil
	value := strings.TrimSpace(f.longURL)
	f.fieldsMu.Unlock()

	if msg := ValidateURL(value); msg != "" {
		return f.invalid(msg)
	}

	f.submitting()
	res, err := f.links.CreateLink(ctx, value)
	if err != nil {
		return f.failed(ctx, service.ErrorField(err, "Failed to create short link"), err)
	}

	f.fieldsMu.Lock()
	f.created = &res
	f.longURL = ""
	listeners := append([]func(context.Context){}, f.onCreated...)
	f.fieldsMu.Unlock()

	f.succeeded()
	for _, fn := range listeners {
		fn(ctx)
	}
	return nil
}

// ValidateURL returns the message for an unacceptable long URL, or "".
// value is expected to be trimmed.
func ValidateURL(value string) string {
	if value == "" {
		return "Please enter a URL."
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" {
		return "Invalid URL format."
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" && specialHost(value) == "" {
			return "Invalid URL format."
		}
		return ""
	default:
		return "URL must start with http:// or https://"
	}
}

// specialHost returns the host of an http(s) URL written without the
// double slash, such as "http:example.com" or "http:/example.com", which
// browsers read as "http://example.com/". The value itself is sent as typed.
func specialHost(value string) string {
	i := strings.IndexByte(value, ':')
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(value[i+1:], `/\`)
	if rest == "" {
		return ""
	}
	u, err := url.Parse(value[:i] + "://" + rest)
	if err != nil {
		return ""
	}
	return u.Host
}
