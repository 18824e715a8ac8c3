// Package commands holds the helpbundler CLI command implementations.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/helpbundler/internal/build"
	"git.home.luguber.info/inful/helpbundler/internal/config"
	"git.home.luguber.info/inful/helpbundler/internal/history"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"

	// Content providers register themselves on import.
	_ "git.home.luguber.info/inful/helpbundler/internal/provider/hugodialect"
)

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"helpbundler.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the documentation bundle"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild on content changes"`
	Scan    ScanCmd    `cmd:"" help:"List discovered documents without building"`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration file"`
	History HistoryCmd `cmd:"" help:"Show recent builds from the history database"`
}

// AfterApply runs after flag parsing; set up initial logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// configureLogging re-applies logging from the loaded config. The verbose
// flag wins over the configured level.
func configureLogging(cfg *config.Config, verbose bool) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openHistory opens the configured history store, or returns nil when
// history is disabled.
func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		slog.Warn("Build history unavailable", logfields.Error(err))
		return nil
	}
	return store
}

// newBuilder wires a Builder from config, with history when enabled.
func newBuilder(cfg *config.Config) (*build.Builder, func()) {
	builder := build.New(cfg)
	store := openHistory(cfg)
	cleanup := func() {}
	if store != nil {
		builder = builder.WithHistory(store)
		cleanup = func() { _ = store.Close() }
	}
	return builder, cleanup
}
