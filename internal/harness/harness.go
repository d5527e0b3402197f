package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/qiyaas/internal/corpus"
	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
	"github.com/roach88/qiyaas/internal/testutil"
	"github.com/roach88/qiyaas/internal/trigger"
)

// Harness runs scenarios with deterministic run ids.
type Harness struct {
	store  *store.Store
	runner *trigger.Runner
}

// Run executes a scenario and returns the trace.
//
// Each scenario runs in a fresh in-memory store. A run error on a day is
// recorded in that day's Step and checked against its expect clause; only
// setup failures (bad corpus, store errors) are returned as errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	kv, err := store.OpenBadger(store.BadgerConfig{InMemory: true})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	st := store.New(kv)
	defer st.Close()

	opts, err := scenario.Options.compose()
	if err != nil {
		return nil, err
	}

	ids := &testutil.SequenceIDs{}
	h := &Harness{
		store: st,
		runner: trigger.NewRunner(st,
			trigger.WithComposeOptions(opts),
			trigger.WithLocation(time.UTC),
			trigger.WithRunIDs(ids.Next),
			trigger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		),
	}

	if err := h.setup(ctx, scenario); err != nil {
		return nil, fmt.Errorf("setup %s: %w", scenario.Name, err)
	}

	result := &Result{}
	for _, day := range scenario.Days {
		step, err := h.runDay(ctx, day.Date)
		if err != nil {
			return nil, err
		}
		result.Steps = append(result.Steps, step)
	}

	ledger, err := st.LoadUsedWords(ctx)
	if err != nil {
		return nil, err
	}
	result.Ledger = ledger.Words()

	for i, day := range scenario.Days {
		for _, msg := range checkDay(day, result.Steps[i]) {
			result.AddError(fmt.Sprintf("days[%d] %s: %s", i, day.Date, msg))
		}
	}
	return result, nil
}

// setup imports the corpus and seeds the ledger.
func (h *Harness) setup(ctx context.Context, s *Scenario) error {
	c, err := s.loadCorpus()
	if err != nil {
		return err
	}
	if c != nil {
		normalized, _ := corpus.NewNormalizer(s.Blocklist).Normalize(c)
		if err := h.store.SaveCorpus(ctx, normalized); err != nil {
			return err
		}
	}
	if len(s.UsedWords) > 0 {
		if err := h.store.SaveUsedWords(ctx, puzzle.NewLedger(s.UsedWords...)); err != nil {
			return err
		}
	}
	return nil
}

// loadCorpus validates the scenario's corpus the way corpus import does.
// It returns nil when the scenario has none.
func (s *Scenario) loadCorpus() (puzzle.Corpus, error) {
	var (
		filename string
		data     []byte
		err      error
	)
	switch {
	case s.Corpus != "":
		filename = filepath.Join(s.dir, s.Corpus)
		data, err = os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read corpus: %w", err)
		}
	case len(s.Words) > 0:
		filename = s.Name + ".words"
		data, err = json.Marshal(s.Words)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	c, verrs := corpus.Validate(filename, data)
	if len(verrs) > 0 {
		return nil, fmt.Errorf("corpus %s: %w (%d problems)", filename, verrs[0], len(verrs))
	}
	return c, nil
}

func (h *Harness) runDay(ctx context.Context, date string) (Step, error) {
	out, runErr := h.runner.Run(ctx, date)

	step := Step{
		Date:    date,
		RunID:   out.RunID,
		Skipped: out.Skipped,
		Rerolls: out.Rerolls,
	}
	if runErr != nil {
		step.Error = runErr.Error()
	} else {
		p := out.Puzzle
		step.Puzzle = &p
	}

	ledger, err := h.store.LoadUsedWords(ctx)
	if err != nil {
		return Step{}, err
	}
	step.LedgerSize = ledger.Len()
	return step, nil
}
