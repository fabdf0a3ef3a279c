package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/cli/output"
	"github.com/yndnr/shurlty-go/internal/cli/repl"
	"github.com/yndnr/shurlty-go/internal/infra/shutdown"
	"github.com/yndnr/shurlty-go/internal/storage"
)

// shutdownTimeout bounds the cleanup hooks run on exit or interrupt.
const shutdownTimeout = 5 * time.Second

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start interactive mode (default)",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	var watch string
	if env.Config.Storage.Backend == storage.BackendFile {
		watch = env.Config.Storage.StatePath()
	}

	r := repl.New(repl.Options{
		App:         env.App,
		Store:       env.Store,
		Links:       env.Links,
		Metrics:     env.Metrics,
		Logger:      env.Log.Slog(),
		HistoryPath: env.Config.HistoryPath(),
		WatchPath:   watch,
		In:          c.App.Reader,
		Out:         env.Out,
		Banner:      output.IsTerminal(env.Out),
	})

	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(func(context.Context) error { return closeEnv(c) })
	h.OnShutdown(func(context.Context) error { return r.Close() })

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	waitCtx, stopWait := context.WithCancel(context.Background())
	go func() { _ = h.Wait(waitCtx) }()

	select {
	case err = <-done:
		stopWait()
		<-h.Done()
		return err
	case <-h.Done():
		// Interrupted while reading input.
		return nil
	}
}
