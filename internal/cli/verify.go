package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Audit every stored puzzle",
		Long: `Check every stored puzzle: three clues with distinct categories, rules
and length buckets, numbers matching their rules, no word used on two dates,
and every word present in the used-words ledger.

Exits 1 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := commandContext(cmd)
			dates, err := e.store.ListPuzzleDates(ctx)
			if err != nil {
				return e.out.Fail(ExitFailure, ErrCodeStore, "failed to list puzzles", err, nil)
			}
			used, err := e.store.LoadUsedWords(ctx)
			if err != nil {
				return e.out.Fail(ExitFailure, ErrCodeStore, "failed to load used words", err, nil)
			}

			result := verifyResult{Problems: make(map[string][]string)}
			firstSeen := make(map[string]string) // canonical word -> date
			for _, date := range dates {
				p, err := e.store.LoadPuzzle(ctx, date)
				if err != nil {
					result.Problems[date] = append(result.Problems[date], err.Error())
					continue
				}
				result.Checked++
				result.Problems[date] = append(result.Problems[date], auditPuzzle(date, p, used, firstSeen)...)
			}
			for key, problems := range result.Problems {
				if len(problems) == 0 {
					delete(result.Problems, key)
				}
			}

			if len(result.Problems) > 0 {
				return e.out.Fail(ExitFailure, ErrCodeVerify,
					fmt.Sprintf("%d of %d puzzle(s) have problems", len(result.Problems), len(dates)), nil, result)
			}
			return e.out.Success(result)
		},
	}
}

// auditPuzzle checks one stored puzzle. firstSeen records the first date
// each word appeared and is updated.
func auditPuzzle(date string, p puzzle.Puzzle, used puzzle.Ledger, firstSeen map[string]string) []string {
	problems := puzzle.Check(p)
	if p.Date != date {
		problems = append(problems, fmt.Sprintf("stored under %s but dated %s", date, p.Date))
	}
	for _, word := range p.Words() {
		key := puzzle.Canonical(word)
		if prev, ok := firstSeen[key]; ok && prev != date {
			problems = append(problems, fmt.Sprintf("word %s already used on %s", key, prev))
		} else {
			firstSeen[key] = date
		}
		if !used.Contains(word) {
			problems = append(problems, fmt.Sprintf("word %s missing from used words", key))
		}
	}
	return problems
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
