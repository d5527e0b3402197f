package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// checkDay compares a step with its expect clause and returns the failures.
// A day without an expect clause only has to succeed.
func checkDay(day Day, step Step) []string {
	exp := day.Expect
	if exp == nil {
		exp = &Expect{}
	}

	if exp.Error != "" {
		switch {
		case step.Error == "":
			return []string{fmt.Sprintf("expected error containing %q, run succeeded", exp.Error)}
		case !strings.Contains(step.Error, exp.Error):
			return []string{fmt.Sprintf("expected error containing %q, got %q", exp.Error, step.Error)}
		}
		return nil
	}
	if step.Error != "" {
		return []string{"unexpected error: " + step.Error}
	}

	var failures []string
	if step.Skipped != exp.Skipped {
		failures = append(failures, fmt.Sprintf("skipped = %v, want %v", step.Skipped, exp.Skipped))
	}
	if exp.Rerolls != nil && step.Rerolls != *exp.Rerolls {
		failures = append(failures, fmt.Sprintf("rerolls = %d, want %d", step.Rerolls, *exp.Rerolls))
	}
	if len(exp.Words) > 0 {
		got := step.Puzzle.Words()
		want := make([]string, len(exp.Words))
		for i, w := range exp.Words {
			want[i] = puzzle.Canonical(w)
		}
		if !slices.Equal(got, want) {
			failures = append(failures, fmt.Sprintf("words = %v, want %v", got, want))
		}
	}
	if problems := puzzle.Check(*step.Puzzle); !slices.Equal(problems, exp.Problems) {
		failures = append(failures, fmt.Sprintf("audit problems = %q, want %q", problems, exp.Problems))
	}
	return failures
}
