package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// FileTokenStore keeps the credential in a small JSON document on disk,
// the terminal counterpart of browser local storage.
//
// The document maps keys to string values; the credential lives under
// TokenKey. Unknown keys are preserved across writes. Reads always hit
// the file, so writes from other processes are observed immediately.
type FileTokenStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileTokenStore creates a file-backed store at path.
// The file is created lazily on the first Set.
func NewFileTokenStore(path string, logger *slog.Logger) (*FileTokenStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileTokenStore{path: path, logger: logger}, nil
}

// Path returns the backing file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Get returns the stored credential.
func (s *FileTokenStore) Get(ctx context.Context) (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}
	return domain.Credential(doc[TokenKey]), nil
}

// Set stores the credential.
func (s *FileTokenStore) Set(ctx context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[TokenKey] = cred.String()
	return s.write(doc)
}

// Clear removes the credential.
func (s *FileTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[TokenKey]; !ok {
		return nil
	}
	delete(doc, TokenKey)
	return s.write(doc)
}

// Close is a no-op.
func (s *FileTokenStore) Close() error {
	return nil
}

func (s *FileTokenStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, domain.ErrStorage.WithCause(err)
	}

	doc := make(map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt document is treated as empty and overwritten on next write.
		s.logger.Warn("token store document unreadable, ignoring",
			"path", s.path,
			"error", err)
		return make(map[string]string), nil
	}
	return doc, nil
}

// write replaces the document atomically (temp file + rename).
func (s *FileTokenStore) write(doc map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.ErrStorage.WithCause(err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.ErrStorage.WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.ErrStorage.WithCause(err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.ErrStorage.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.ErrStorage.WithCause(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}
