// Package form implements the submission state machines behind the login,
// registration and link creation screens, plus the links page loader.
//
// Every form moves Idle -> Validating -> Submitting -> Success, falling
// back to Idle with a displayable error when validation or the backend
// rejects the input. A form instance allows one submission at a time; a
// concurrent Submit fails fast with domain.ErrSubmitInFlight.
package form
