package form

import (
	"context"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/core/service"
)

// LinkLister fetches the user's links.
type LinkLister interface {
	ListLinks(ctx context.Context) ([]domain.LinkItem, error)
}

// LinksPage holds the data shown on the links screen.
type LinksPage struct {
	links LinkLister

	mu      sync.RWMutex
	items   []domain.LinkItem
	loading bool
	err     string
}

// NewLinksPage creates a links page. It starts in the loading state until
// the first Load completes.
func NewLinksPage(links LinkLister) *LinksPage {
	return &LinksPage{links: links, loading: true}
}

// Load refreshes the list. On failure the previous items are kept and the
// error is set.
func (p *LinksPage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.err = ""
	p.mu.Unlock()

	items, err := p.links.ListLinks(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.err = service.ErrorField(err, "Failed to load links")
		return err
	}
	p.items = items
	return nil
}

// Items returns a copy of the loaded links in backend order.
func (p *LinksPage) Items() []domain.LinkItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.LinkItem(nil), p.items...)
}

// Loading reports whether a load is in progress or none has finished.
func (p *LinksPage) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Err returns the last load error message.
func (p *LinksPage) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Attach reloads the page whenever form creates a link.
func (p *LinksPage) Attach(form *CreateLinkForm) {
	form.OnCreated(func(ctx context.Context) {
		_ = p.Load(ctx)
	})
}
