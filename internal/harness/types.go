package harness

import "github.com/roach88/qiyaas/internal/puzzle"

// Step records one day of a scenario run.
type Step struct {
	Date    string         `json:"date"`
	RunID   string         `json:"run_id"`
	Puzzle  *puzzle.Puzzle `json:"puzzle,omitempty"`
	Skipped bool           `json:"skipped,omitempty"`
	Rerolls int            `json:"rerolls"`

	// LedgerSize is read back from the store after the run.
	LedgerSize int    `json:"ledger_size"`
	Error      string `json:"error,omitempty"`
}

// Result contains the outcome of running a scenario.
type Result struct {
	// Steps holds one entry per scenario day, in order.
	Steps []Step

	// Ledger is the stored ledger after the last day, sorted.
	Ledger []string

	// Errors lists failed expectations. Empty means the scenario passed.
	Errors []string
}

// Pass reports whether every expectation held.
func (r *Result) Pass() bool {
	return len(r.Errors) == 0
}

// AddError records a failed expectation.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
}
