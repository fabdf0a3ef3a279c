package storage

import (
	"context"
	"errors"
	"io"

	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// TokenKey is the fixed storage key the credential is kept under.
const TokenKey = "shurlty.token"

// Common errors
var (
	ErrClosed = errors.New("token store closed")
)

// TokenStore holds the session credential.
//
// Get returns an empty credential and a nil error when none is stored.
// Set and Clear are visible to every subsequent Get.
type TokenStore interface {
	Get(ctx context.Context) (domain.Credential, error)
	Set(ctx context.Context, cred domain.Credential) error
	Clear(ctx context.Context) error
}

// Backend is a TokenStore that owns resources.
type Backend interface {
	TokenStore
	io.Closer
}

// Authenticated reports whether store currently holds a credential.
// Read errors count as unauthenticated.
func Authenticated(ctx context.Context, store TokenStore) bool {
	cred, err := store.Get(ctx)
	return err == nil && !cred.IsZero()
}
