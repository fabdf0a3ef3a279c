// Package logger provides structured logging for shurlty-cli.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, configuration, global default
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction (credentials, passwords)
//
// The CLI logs to stderr so command output on stdout stays clean.
package logger
