// Package domain defines the core domain models for shurlty-cli.
//
// Domain models are plain value objects without IO dependencies:
//
//   - Credential: opaque bearer token issued by the backend at login
//   - LinkItem / CreatedLink: short links as reported by the backend
//   - Route: client-side view addresses used for navigation
//   - Errors: coded error taxonomy (validation, backend, authorization)
//
// The backend owns every link and account; the client only holds
// transient, non-authoritative copies for display.
package domain
