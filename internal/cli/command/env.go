package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/cli/config"
	"github.com/yndnr/shurlty-go/internal/cli/connection"
	"github.com/yndnr/shurlty-go/internal/cli/output"
	"github.com/yndnr/shurlty-go/internal/cli/prompt"
	"github.com/yndnr/shurlty-go/internal/cli/view"
	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/core/service"
	"github.com/yndnr/shurlty-go/internal/infra/tlsroots"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/telemetry/logger"
	"github.com/yndnr/shurlty-go/internal/telemetry/metric"
)

const envKey = "env"

// Env holds everything one invocation needs, built from the merged
// configuration.
type Env struct {
	Config     *config.CLIConfig
	ConfigPath string

	Log     logger.Logger
	Metrics *metric.Registry
	Store   storage.Backend
	Router  *view.Router
	Client  *connection.HTTPClient
	Auth    *service.AuthService
	Links   *service.LinkService
	App     *view.App

	Format output.Format
	Wide   bool
	Out    io.Writer
	Prompt *prompt.Prompter
}

// Formatter returns the formatter selected by --output.
func (e *Env) Formatter() output.Formatter {
	return output.NewFormatter(e.Format, e.Wide)
}

// Close releases the token store.
func (e *Env) Close() error {
	if e.Store == nil {
		return nil
	}
	return e.Store.Close()
}

// loadConfig merges defaults, the config file, SHURLTY_* variables and
// global flags.
func loadConfig(c *cli.Context) (*config.CLIConfig, string, error) {
	flags := ParseGlobalFlags(c)
	path := flags.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path, flags.overrides())
	if err != nil {
		return nil, path, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

// getEnv returns the invocation environment, building it on first use.
// The env logger is attached to c.Context for code that logs through ctx.
func getEnv(c *cli.Context) (*Env, error) {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		var err error
		if env, err = newEnv(c); err != nil {
			return nil, err
		}
		if c.App.Metadata == nil {
			c.App.Metadata = make(map[string]any)
		}
		c.App.Metadata[envKey] = env
	}
	c.Context = logger.WithLogger(c.Context, env.Log)
	return env, nil
}

func closeEnv(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, envKey)
	return env.Close()
}

func newEnv(c *cli.Context) (*Env, error) {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	logCfg.Output = c.App.ErrWriter
	if logCfg.Output == nil {
		logCfg.Output = os.Stderr
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)

	tlsCfg, err := tlsroots.ClientConfig(cfg.API.CAFile)
	if err != nil {
		return nil, fmt.Errorf("load ca file: %w", err)
	}

	store, err := storage.Open(cfg.Storage, log.Slog())
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	metrics := metric.NewRegistry()
	router := view.NewRouter(domain.RouteHome)
	policy := connection.NewAuthFailurePolicy(store, router, log.Slog(), metrics)
	client := connection.NewHTTPClient(cfg.API.BaseURL, store,
		connection.WithTimeout(cfg.API.Timeout),
		connection.WithTLSConfig(tlsCfg),
		connection.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
		connection.WithMetrics(metrics),
		connection.WithLogger(log.Slog()),
		connection.WithAuthFailurePolicy(policy),
	)
	auth := service.NewAuthService(client, log.Slog())
	links := service.NewLinkService(client)

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}
	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}

	return &Env{
		Config:     cfg,
		ConfigPath: path,
		Log:        log,
		Metrics:    metrics,
		Store:      store,
		Router:     router,
		Client:     client,
		Auth:       auth,
		Links:      links,
		App: view.NewApp(router, view.Deps{
			Store:   store,
			Auth:    auth,
			Links:   links,
			Metrics: metrics,
			Logger:  log.Slog(),
		}),
		Format: format,
		Wide:   c.Bool("wide"),
		Out:    out,
		Prompt: prompt.New(in, out),
	}, nil
}

// requireLogin runs the /links guard and moves to /links, so a 401 during
// the command is seen as a redirect away from it.
func requireLogin(c *cli.Context, env *Env) error {
	if err := env.App.Guard().Check(c.Context); err != nil {
		if errors.Is(err, domain.ErrNotLoggedIn) {
			return fail(notLoggedInMessage, err)
		}
		return err
	}
	env.Router.Navigate(domain.RouteLinks)
	return nil
}
