// Package view implements session-aware screen gating for shurlty-cli.
//
// Screens are addressed by route paths (/, /login, /register, /links) on
// an explicit Router. Protected screens are wrapped in a Guard that reads
// the token store on every render and replaces the current route with
// /login when no credential is present. The navbar is recomputed from the
// store each time it is drawn; session state is never cached here.
package view
