package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/config"
	"github.com/roach88/qiyaas/internal/store"
)

// env is what every command needs after flag parsing.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	out    *OutputFormatter
	store  *store.Store
}

// setup loads config, configures logging and opens the store.
// Failures are printed and returned as ExitError.
func setup(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err, nil)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log, opts.Verbose)
	slog.SetDefault(logger)

	out.VerboseLog("opening %s store at %s", cfg.Store.Driver, cfg.Store.Path)
	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path, logger)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeStore, "failed to open store", err, nil)
	}
	return &env{cfg: cfg, logger: logger, out: out, store: st}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "error", err)
	}
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// commandContext returns the command's context or Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
