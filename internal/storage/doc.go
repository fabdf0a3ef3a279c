// Package storage provides the token store for shurlty-cli.
//
// The token store is the single holder of the session credential. Every
// collaborator derives "authenticated" by reading it; nothing else caches
// user identity.
//
// Backends:
//
//   - memory: process-scoped, for tests and ephemeral use
//   - file: JSON document keyed by a fixed name (default)
//   - badger: embedded Badger KV, same fixed key
//
// Writes are immediately visible to subsequent reads. No encryption and no
// client-side expiry checks are performed.
package storage
