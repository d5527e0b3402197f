package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Date string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one puzzle generation",
		Long: `Generate and store the puzzle for a date (today in the configured zone by
default). A date that already has a puzzle is left unchanged.

Example:
  qiyaas generate
  qiyaas generate --date 2025-01-19 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "date to generate (YYYY-MM-DD)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	e, err := setup(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	runner, err := newRunner(e)
	if err != nil {
		return err
	}

	date := opts.Date
	if date == "" {
		date = runner.Today()
	}
	if !puzzle.ValidDate(date) {
		return e.out.Fail(ExitCommandError, ErrCodeGeneric, "invalid date "+date+", use YYYY-MM-DD", nil, nil)
	}

	outcome, err := runner.Run(commandContext(cmd), date)
	if err != nil {
		var ex *puzzle.ExhaustionError
		switch {
		case errors.As(err, &ex):
			return e.out.Fail(ExitFailure, ErrCodeExhausted, "corpus exhausted", err, ex)
		case errors.Is(err, store.ErrCorpusMissing):
			return e.out.Fail(ExitFailure, ErrCodeCorpus, "no corpus imported, run 'qiyaas corpus import'", err, nil)
		}
		return e.out.Fail(ExitFailure, ErrCodeGeneration, "generation failed", err, nil)
	}

	return e.out.Success(generateResult{
		RunID:      outcome.RunID,
		Date:       outcome.Date,
		Skipped:    outcome.Skipped,
		Rerolls:    outcome.Rerolls,
		LedgerSize: outcome.Ledger,
		Puzzle:     outcome.Puzzle,
	})
}
