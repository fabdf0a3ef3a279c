package storage

import (
	"context"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// MemoryTokenStore keeps the credential in process memory.
type MemoryTokenStore struct {
	mu   sync.RWMutex
	cred domain.Credential
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Get returns the stored credential.
func (s *MemoryTokenStore) Get(ctx context.Context) (domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, nil
}

// Set stores the credential.
func (s *MemoryTokenStore) Set(ctx context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	return nil
}

// Clear removes the credential.
func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = ""
	return nil
}

// Close is a no-op.
func (s *MemoryTokenStore) Close() error {
	return nil
}
