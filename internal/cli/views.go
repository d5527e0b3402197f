package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/qiyaas/internal/corpus"
	"github.com/roach88/qiyaas/internal/puzzle"
)

// puzzleView prints a puzzle as a table.
type puzzleView struct {
	puzzle.Puzzle
}

func (v puzzleView) RenderText(w io.Writer) {
	fmt.Fprintln(w, v.Date)
	renderClues(w, v.Clues)
}

func renderClues(w io.Writer, clues []puzzle.Clue) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	for i, c := range clues {
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\t%s\t%d\n",
			i+1, c.Word, c.Type, c.LengthCategory, c.Rule, c.Number)
	}
	tw.Flush()
}

// generateResult is the output of generate.
type generateResult struct {
	RunID      string        `json:"run_id"`
	Date       string        `json:"date"`
	Skipped    bool          `json:"skipped"`
	Rerolls    int           `json:"rerolls"`
	LedgerSize int           `json:"ledger_size,omitempty"`
	Puzzle     puzzle.Puzzle `json:"puzzle"`
}

func (r generateResult) RenderText(w io.Writer) {
	if r.Skipped {
		fmt.Fprintf(w, "Puzzle for %s already stored, not regenerated.\n", r.Date)
	} else {
		fmt.Fprintf(w, "Generated puzzle for %s (run %s, %d reroll(s), %d words used).\n",
			r.Date, r.RunID, r.Rerolls, r.LedgerSize)
	}
	renderClues(w, r.Puzzle.Clues)
}

// historyResult is the output of history.
type historyResult struct {
	Dates []string `json:"dates"`
}

func (r historyResult) RenderText(w io.Writer) {
	if len(r.Dates) == 0 {
		fmt.Fprintln(w, "No puzzles stored.")
		return
	}
	for _, d := range r.Dates {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintf(w, "%d puzzle(s)\n", len(r.Dates))
}

// importResult is the output of corpus import.
type importResult struct {
	corpus.Report
	Stats []corpus.CategoryStats `json:"stats"`
}

func (r importResult) RenderText(w io.Writer) {
	fmt.Fprintln(w, "Corpus imported.")
	statsView(r.Stats).RenderText(w)
	if len(r.Dropped) == 0 {
		return
	}
	var parts []string
	for _, reason := range []string{corpus.DropNotLetters, corpus.DropLength, corpus.DropExcluded, corpus.DropBlocked, corpus.DropDuplicate} {
		if n := r.Dropped[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, n))
		}
	}
	fmt.Fprintf(w, "Dropped: %s\n", strings.Join(parts, " "))
}

// statsView prints bucket counts.
type statsView []corpus.CategoryStats

func (v statsView) RenderText(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSHORT\tMEDIUM\tLONG\tTOTAL")
	for _, s := range v {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Category, s.Short, s.Medium, s.Long, s.Total)
	}
	tw.Flush()
}

// verifyResult is the output of verify.
type verifyResult struct {
	Checked  int                 `json:"checked"`
	Problems map[string][]string `json:"problems,omitempty"` // by date
}

func (r verifyResult) RenderText(w io.Writer) {
	if len(r.Problems) == 0 {
		fmt.Fprintf(w, "%d puzzle(s) verified, no problems.\n", r.Checked)
		return
	}
	for _, key := range sortedKeys(r.Problems) {
		for _, p := range r.Problems[key] {
			fmt.Fprintf(w, "%s: %s\n", key, p)
		}
	}
}

// validationErrors prints one corpus problem per line.
type validationErrors []corpus.ValidationError

func (v validationErrors) RenderText(w io.Writer) {
	for _, e := range v {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}
