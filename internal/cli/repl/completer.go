package repl

import (
	"sort"
	"strings"
)

// Completer suggests commands by prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over commands.
func NewCompleter(commands []string) *Completer {
	cp := append([]string(nil), commands...)
	sort.Strings(cp)
	return &Completer{commands: cp}
}

// Complete returns the commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
