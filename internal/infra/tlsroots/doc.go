// Package tlsroots builds the TLS client configuration used to reach the
// shortener API.
//
// The system pool is extended with an optional CA bundle so that
// self-hosted backends with private certificates can be trusted without
// disabling verification.
package tlsroots
