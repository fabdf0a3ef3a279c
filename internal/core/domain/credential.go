package domain

// Credential is the opaque bearer token issued by the backend at login.
//
// The client never inspects it for authorization decisions; expiry is
// enforced by the backend rejecting stale tokens.
type Credential string

// String returns the raw token.
func (c Credential) String() string {
	return string(c)
}

// IsZero reports whether the credential is empty.
func (c Credential) IsZero() bool {
	return c == ""
}

// LoginResult is the backend response to a successful login.
type LoginResult struct {
	Token Credential `json:"token" yaml:"token"`
}

// RegisterResult is the backend response to a successful registration.
type RegisterResult struct {
	Message string `json:"message" yaml:"message"`
	UserID  *int64 `json:"userId,omitempty" yaml:"userId,omitempty"`
}
