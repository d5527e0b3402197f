package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Print the current puzzle or the puzzle for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := commandContext(cmd)
			var p puzzle.Puzzle
			if len(args) == 1 {
				if !puzzle.ValidDate(args[0]) {
					return e.out.Fail(ExitCommandError, ErrCodeGeneric, "invalid date "+args[0]+", use YYYY-MM-DD", nil, nil)
				}
				p, err = e.store.LoadPuzzle(ctx, args[0])
			} else {
				p, err = e.store.LoadCurrentPuzzle(ctx)
			}
			if errors.Is(err, store.ErrNotFound) {
				return e.out.Fail(ExitFailure, ErrCodeNotFound, "no puzzle available", nil, nil)
			}
			if err != nil {
				return e.out.Fail(ExitFailure, ErrCodeStore, "failed to load puzzle", err, nil)
			}
			return e.out.Success(puzzleView{p})
		},
	}
}
