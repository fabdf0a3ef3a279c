// Package prompt reads user input for shurlty-cli forms and the REPL.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompter reads lines from one shared reader. Secrets are read without
// echo when the input is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// New creates a prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.fd = int(f.Fd())
	}
	return p
}

// Terminal reports whether input comes from a terminal.
func (p *Prompter) Terminal() bool {
	return p.fd >= 0
}

// Line prints label and reads one line without its trailing newline.
// A final line without a newline is returned with a nil error; io.EOF is
// returned only when nothing was read.
func (p *Prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret reads a line without echo on a terminal, and as a plain line
// otherwise.
func (p *Prompter) Secret(label string) (string, error) {
	if p.fd < 0 {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Value returns preset when it is non-empty and prompts otherwise.
func (p *Prompter) Value(preset, label string, secret bool) (string, error) {
	if preset != "" {
		return preset, nil
	}
	if secret {
		return p.Secret(label)
	}
	return p.Line(label)
}
