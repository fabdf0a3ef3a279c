// Package command provides the CLI command definitions for shurlty-cli.
//
// This package defines all commands using urfave/cli/v2:
//
//   - root.go: App, global flags, default REPL action
//   - env.go: per-invocation wiring of config, store, client and views
//   - auth.go: register, login, logout
//   - links.go: links list, create and qr
//   - session.go: session status
//   - config.go: config show, path and set
//   - version.go, repl.go
//
// Commands drive the same forms and guard as the REPL, so a protected
// command without a stored credential fails before any request is sent.
package command
