package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/common-nighthawk/go-figure"

	"github.com/yndnr/shurlty-go/internal/cli/prompt"
	"github.com/yndnr/shurlty-go/internal/cli/view"
	"github.com/yndnr/shurlty-go/internal/infra/confloader"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

// Prompt is printed before each command line.
const Prompt = "shurlty> "

// SessionChangedText announces a login or logout made by another process.
const SessionChangedText = "Session changed in another window."

// Options configures a REPL.
type Options struct {
	App     *view.App
	Store   storage.TokenStore
	Links   view.LinkService
	Metrics *metric.Registry
	Logger  *slog.Logger

	// HistoryPath is where command history persists. Empty disables it.
	HistoryPath string
	// WatchPath is the token state file. Empty disables watching.
	WatchPath string

	In     io.Reader
	Out    io.Writer
	Banner bool
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	app       *view.App
	store     storage.TokenStore
	links     view.LinkService
	metrics   *metric.Registry
	logger    *slog.Logger
	watchPath string
	banner    bool

	out       io.Writer
	prompt    *prompt.Prompter
	completer *Completer
	history   *History
	commands  map[string]command
	order     []command

	// mu serializes screen output between the loop and the watcher and
	// guards lastAuthed and executing.
	mu         sync.Mutex
	lastAuthed bool
	executing  bool
	watcher    *confloader.Watcher
	closeOnce  sync.Once
}

// New creates a new REPL instance.
func New(opts Options) *REPL {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &REPL{
		app:       opts.App,
		store:     opts.Store,
		links:     opts.Links,
		metrics:   opts.Metrics,
		logger:    logger,
		watchPath: opts.WatchPath,
		banner:    opts.Banner,
		out:       out,
		prompt:    prompt.New(in, out),
		history:   NewHistory(opts.HistoryPath),
		commands:  make(map[string]command),
	}

	names := []string{"exit", "quit"}
	for _, cmd := range commandTable {
		r.commands[cmd.name] = cmd
		r.order = append(r.order, cmd)
		names = append(names, cmd.name)
	}
	r.completer = NewCompleter(names)
	return r
}

// Run starts the REPL loop. It returns nil on exit, quit, end of input or
// when ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		r.logger.Warn("load history failed", "error", err)
	}
	if r.banner {
		fmt.Fprint(r.out, figure.NewFigure("Shurlty", "", true).String())
		fmt.Fprintln(r.out, "Type 'help' for commands.")
	}
	r.watch(ctx)
	r.render(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := r.prompt.Line(Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.Execute(ctx, line); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line.
func (r *REPL) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	cmd, ok := r.commands[name]
	if !ok {
		if s := r.completer.Complete(name); len(s) > 0 {
			return fmt.Errorf("unknown command %q (did you mean: %s?)", name, strings.Join(s, ", "))
		}
		return fmt.Errorf("unknown command %q; type 'help'", name)
	}
	r.setExecuting(true)
	defer r.commandDone(ctx)
	return cmd.run(r, ctx, args)
}

func (r *REPL) setExecuting(v bool) {
	r.mu.Lock()
	r.executing = v
	r.mu.Unlock()
}

// commandDone records the session state a local command left behind, so
// the watcher's echo of that write is not reported as an external change.
func (r *REPL) commandDone(ctx context.Context) {
	authed := storage.Authenticated(ctx, r.store)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executing = false
	r.lastAuthed = authed
}

// Close saves history and stops the token watcher. It is safe to call
// more than once.
func (r *REPL) Close() error {
	var err error
	r.closeOnce.Do(func() {
		if r.watcher != nil {
			_ = r.watcher.Stop()
		}
		err = r.history.Save()
	})
	return err
}

// History returns the command history.
func (r *REPL) History() *History {
	return r.history
}

func (r *REPL) render(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out)
	err := r.app.Render(ctx, r.out)
	r.lastAuthed = storage.Authenticated(ctx, r.store)
	return err
}

// watch redraws the navbar when another process logs in or out.
func (r *REPL) watch(ctx context.Context) {
	if r.watchPath == "" || r.watcher != nil {
		return
	}
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(r.logger))
	if err != nil {
		r.logger.Debug("token watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(r.watchPath); err != nil {
		_ = w.Stop()
		return
	}
	w.OnChange(func(string) { r.sessionChanged(ctx) })
	r.watcher = w
	w.StartAsync()
}

// sessionChanged handles a token file event. Events that arrive while a
// command runs are the command's own writes; its render redraws the screen.
func (r *REPL) sessionChanged(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.executing {
		return
	}
	authed := storage.Authenticated(ctx, r.store)
	if authed == r.lastAuthed {
		return
	}
	r.lastAuthed = authed
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, SessionChangedText)
	_ = view.RenderNavbar(r.out, view.NavItems(ctx, r.store), r.app.Router().Path())
	fmt.Fprint(r.out, Prompt)
}
