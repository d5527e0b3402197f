package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/metrics"
	"github.com/roach88/qiyaas/internal/server"
	"github.com/roach88/qiyaas/internal/trigger"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Now        bool
	NoSchedule bool
	Addr       string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle API and run the daily trigger",
		Long: `Serve the read-only puzzle API and generate a new puzzle every day at
midnight in the configured time zone.

Example:
  qiyaas serve --config qiyaas.yaml
  qiyaas serve --now --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Now, "now", false, "generate today's puzzle at startup")
	cmd.Flags().BoolVar(&opts.NoSchedule, "no-schedule", false, "serve only, do not schedule generation")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	e, err := setup(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := newRunner(e)
	if err != nil {
		return err
	}

	if opts.Now {
		if _, err := runner.RunToday(ctx); err != nil {
			// Logged by the runner; serving continues.
			e.logger.Warn("startup generation failed", "error", err)
		}
	}

	if e.cfg.Schedule.Enabled && !opts.NoSchedule {
		sched, err := trigger.NewScheduler(runner, e.cfg.Schedule.Spec, e.logger)
		if err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeConfig, "invalid schedule", err, nil)
		}
		sched.Start()
		defer sched.Stop()
	}

	addr := e.cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	api := server.New(e.store, server.Config{
		CurrentTTL:     e.cfg.Server.CurrentTTL,
		HistoricalTTL:  e.cfg.Server.HistoricalTTL,
		AllowedOrigins: e.cfg.Server.AllowedOrigins,
		Logger:         e.logger,
	})

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	listen := func(serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				errCh <- err
				stop()
			}
		}()
	}

	listen(func(ctx context.Context) error { return api.ListenAndServe(ctx, addr) })
	if e.cfg.Metrics.Addr != "" {
		listen(func(ctx context.Context) error {
			return server.ServeMetrics(ctx, e.logger, e.cfg.Metrics.Addr, metrics.Handler())
		})
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return e.out.Fail(ExitFailure, ErrCodeGeneric, "server error", err, nil)
	}
	e.logger.Info("shut down gracefully")
	return nil
}

// newRunner builds a trigger runner from config.
func newRunner(e *env) (*trigger.Runner, error) {
	composeOpts, err := e.cfg.ComposeOptions()
	if err != nil {
		return nil, e.out.Fail(ExitCommandError, ErrCodeConfig, "invalid generation config", err, nil)
	}
	loc, err := e.cfg.Location()
	if err != nil {
		return nil, e.out.Fail(ExitCommandError, ErrCodeConfig, "invalid time zone", err, nil)
	}
	return trigger.NewRunner(e.store,
		trigger.WithComposeOptions(composeOpts),
		trigger.WithLocation(loc),
		trigger.WithLogger(e.logger),
	), nil
}
