package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
)

// globalOptions holds the root flags and the config loaded in before.
type globalOptions struct {
	logLevel   string
	logFormat  string
	debug      bool
	configPath string

	cfg Config
}

func (g *globalOptions) flags() []cli.Flag {
	return append(loggingFlags(g),
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: $" + envConfig + " or the user config dir)",
			Destination: &g.configPath,
		},
	)
}

func loggingFlags(g *globalOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       logger.FormatPretty,
			Destination: &g.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &g.debug,
		},
	}
}

// before loads the config file and installs the logger in the context
// shared by every subcommand.
func (g *globalOptions) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, cfgErr := loadConfig(configPath(g.configPath))
	g.cfg = cfg
	applyLoggingConfig(cmd, cfg, g)

	level, err := logger.ParseLevel(g.logLevel)
	if err != nil {
		return ctx, err
	}
	if g.debug {
		level = slog.LevelDebug
	}
	log, err := newLogger(cmd.Root().ErrWriter, g.logFormat, level)
	if err != nil {
		return ctx, err
	}
	if cfgErr != nil {
		log.Warn("ignoring config file", "error", cfgErr)
	}
	return logger.WithContext(ctx, log), nil
}

// newLogger drops colors from pretty output when stderr is not a terminal.
func newLogger(w io.Writer, format string, level slog.Level) (logger.Logger, error) {
	pretty := format == "" || strings.EqualFold(format, logger.FormatPretty)
	if f, ok := w.(*os.File); ok && pretty && !isTerminal(f) {
		return logger.New(logger.NewPrettyHandler(w, &logger.PrettyOptions{Level: level, NoColor: true})), nil
	}
	return logger.FromFormat(w, format, level)
}
