package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    buildinfo.ProductName,
		Usage:   "Shurlty URL shortener client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RegisterCommand(),
			LoginCommand(),
			LogoutCommand(),
			LinksCommand(),
			SessionCommand(),
			ConfigCommand(),
			VersionCommand(),
			REPLCommand(),
		},
		Action: replAction,
		After:  closeEnv,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Aliases: []string{"a"},
			Usage:   "Shortener API base URL (e.g., https://sho.rt)",
			EnvVars: []string{"SHURLTY_API_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.shurlty/cli.yaml)",
			EnvVars: []string{"SHURLTY_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	APIURL     string
	ConfigPath string
	Output     string
	Wide       bool
	Verbose    bool
	LogLevel   string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		APIURL:     c.String("api-url"),
		ConfigPath: c.String("config"),
		Output:     c.String("output"),
		Wide:       c.Bool("wide"),
		Verbose:    c.Bool("verbose"),
		LogLevel:   c.String("log-level"),
	}
}

// overrides maps set flags to dotted config keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := make(map[string]any)
	if f.APIURL != "" {
		m["api.base_url"] = f.APIURL
	}
	if f.Output != "" {
		m["output"] = f.Output
	}
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	if f.Verbose {
		m["log.level"] = "debug"
	}
	return m
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
