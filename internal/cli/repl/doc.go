// Package repl provides the interactive mode of shurlty-cli.
//
// The loop reads one command per line and drives a view.App: navigation
// commands change the route, form commands prompt for their fields and
// submit, and the current screen is redrawn after every command. The
// token file is watched so a login or logout from another shell is
// reflected in the navbar.
//
//   - repl.go: loop, rendering and the token-file watcher
//   - commands.go: command table and handlers
//   - completer.go: prefix completion used for suggestions
//   - history.go: command history persistence
package repl
