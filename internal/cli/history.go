package cli

import (
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the dates that have a stored puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			dates, err := e.store.ListPuzzleDates(commandContext(cmd))
			if err != nil {
				return e.out.Fail(ExitFailure, ErrCodeStore, "failed to list puzzles", err, nil)
			}
			return e.out.Success(historyResult{Dates: dates})
		},
	}
}
