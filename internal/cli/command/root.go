// Package command provides CLI command definitions for inkgate.
package command

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/layer-3/inkgate"
	"github.com/layer-3/inkgate/internal/config"
	"github.com/layer-3/inkgate/internal/logger"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const (
	configKey = "config"
	loggerKey = "logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "inkgate",
		Usage:   "Sign in to the application API and keep the session token",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			StatusCommand(),
			GetCommand(),
			ServeCommand(),
			StubCommand(),
		},
		Before: before,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the YAML config file",
			EnvVars: []string{"INKGATE_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "Application API base URL (e.g., http://localhost:5000)",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Token store backend: memory, file, redis, badger",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
	}
}

// before loads configuration and builds the logger once per invocation.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), map[string]any{
		"api.base_url":  c.String("api-url"),
		"store.backend": c.String("store"),
		"log.level":     c.String("log-level"),
		"log.format":    c.String("log-format"),
	})
	if err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	c.App.Metadata[loggerKey] = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	return nil
}

// GetConfig retrieves the loaded configuration from context.
func GetConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// GetLogger retrieves the logger from context.
func GetLogger(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// openSession opens a session for the loaded configuration. Callers must Close it.
func openSession(c *cli.Context, opts ...inkgate.SessionOption) (*inkgate.Session, error) {
	opts = append([]inkgate.SessionOption{inkgate.WithLogger(GetLogger(c))}, opts...)
	return inkgate.Open(c.Context, GetConfig(c), opts...)
}
