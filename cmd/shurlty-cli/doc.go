// Package main provides the entry point for shurlty-cli.
//
// shurlty-cli is the command-line client for the Shurlty URL shortener:
//
//   - Account registration and login
//   - Creating and listing short links, QR codes for sharing
//   - Session inspection and logout
//   - Local configuration management
//
// Usage:
//
//	shurlty-cli                      # interactive mode
//	shurlty-cli login --email you@example.com
//	shurlty-cli links create https://example.com/a/long/path
//	shurlty-cli -o json links list
//
// Build information is set with
// -ldflags "-X github.com/yndnr/shurlty-go/internal/infra/buildinfo.Version=...".
package main
