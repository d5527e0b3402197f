package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/qiyaas/internal/metrics"
	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
)

// DefaultTimezone is the zone whose midnight starts a new puzzle day.
const DefaultTimezone = "America/New_York"

// Outcome describes one run.
type Outcome struct {
	RunID   string
	Date    string
	Puzzle  puzzle.Puzzle
	Skipped bool // a dated record already existed
	Rerolls int
	Ledger  int // ledger size after the run
}

// Runner generates puzzles. Runs within one process are serialized.
type Runner struct {
	store  *store.Store
	opts   puzzle.Options
	loc    *time.Location
	now    func() time.Time
	runID  func() string
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithComposeOptions sets the composer options.
func WithComposeOptions(opts puzzle.Options) Option {
	return func(r *Runner) { r.opts = opts }
}

// WithLocation sets the zone used by RunToday.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) { r.loc = loc }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithRunIDs overrides the UUIDv7 run id source.
func WithRunIDs(next func() string) Option {
	return func(r *Runner) { r.runID = next }
}

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner over st.
func NewRunner(st *store.Store, opts ...Option) *Runner {
	r := &Runner{
		store:  st,
		opts:   puzzle.DefaultOptions(),
		loc:    defaultLocation(),
		now:    time.Now,
		runID:  newRunID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the zone used by RunToday.
func (r *Runner) Location() *time.Location {
	return r.loc
}

// Today returns the current date in the runner's zone.
func (r *Runner) Today() string {
	return r.now().In(r.loc).Format(puzzle.DateLayout)
}

// RunToday generates the puzzle for Today.
func (r *Runner) RunToday(ctx context.Context) (Outcome, error) {
	return r.Run(ctx, r.Today())
}

// Run generates and stores the puzzle for date. If a dated record already
// exists the run is skipped and the stored puzzle returned. A skipped run
// only writes when an earlier partial write left the current pointer or the
// ledger behind, see repair.
func (r *Runner) Run(ctx context.Context, date string) (Outcome, error) {
	if !puzzle.ValidDate(date) {
		return Outcome{}, fmt.Errorf("invalid date %q: want %s", date, puzzle.DateLayout)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := Outcome{RunID: r.runID(), Date: date}
	log := r.logger.With("run_id", out.RunID, "date", date)
	log.Info("generation started")

	existing, err := r.store.LoadPuzzle(ctx, date)
	switch {
	case err == nil:
		size, err := r.repair(ctx, log, existing)
		if err != nil {
			return r.fail(log, out, err)
		}
		log.Info("puzzle already stored, skipping")
		metrics.RecordGeneration(metrics.ResultSkipped)
		out.Puzzle = existing
		out.Skipped = true
		out.Ledger = size
		return out, nil
	case !errors.Is(err, store.ErrNotFound):
		return r.fail(log, out, err)
	}

	corpus, err := r.store.LoadCorpus(ctx)
	if err != nil {
		return r.fail(log, out, err)
	}
	used, err := r.store.LoadUsedWords(ctx)
	if err != nil {
		return r.fail(log, out, err)
	}

	res, err := puzzle.Compose(puzzle.Classify(corpus), used, date, r.opts)
	if err != nil {
		return r.fail(log, out, err)
	}
	out.Puzzle = res.Puzzle
	out.Rerolls = res.Rerolls
	metrics.RecordRerolls(res.Rerolls)

	if err := r.store.SavePuzzle(ctx, date, res.Puzzle); err != nil {
		if errors.Is(err, store.ErrPuzzleExists) {
			// Another process stored the date between our check and write.
			log.Warn("puzzle stored concurrently, skipping")
			metrics.RecordGeneration(metrics.ResultSkipped)
			out.Skipped = true
			return out, nil
		}
		return r.fail(log, out, err)
	}
	if err := r.store.SaveCurrentPuzzle(ctx, res.Puzzle); err != nil {
		return r.partial(log, out, metrics.StageDated, []string{store.PuzzleKey(date)}, err)
	}
	if err := r.store.SaveUsedWords(ctx, res.Ledger); err != nil {
		return r.partial(log, out, metrics.StageCurrent, []string{store.PuzzleKey(date), store.CurrentPuzzleKey}, err)
	}

	out.Ledger = res.Ledger.Len()
	metrics.RecordGeneration(metrics.ResultSuccess)
	metrics.SetLedgerSize(out.Ledger)
	log.Info("puzzle generated",
		"words", res.Puzzle.Words(),
		"rerolls", res.Rerolls,
		"ledger_size", out.Ledger,
	)
	return out, nil
}

func (r *Runner) fail(log *slog.Logger, out Outcome, err error) (Outcome, error) {
	var ex *puzzle.ExhaustionError
	if errors.As(err, &ex) {
		log.Error("generation exhausted",
			"category", ex.Category,
			"bucket", ex.Bucket,
			"rule", ex.Rule.String(),
			"error", err,
		)
		metrics.RecordGeneration(metrics.ResultExhausted)
		return out, err
	}
	log.Error("generation failed", "error", err)
	metrics.RecordGeneration(metrics.ResultError)
	return out, err
}

// repair completes a run that stored the dated record p but failed before
// writing the rest. Words of p missing from the ledger are added, and the
// current pointer is rewritten when it is absent or older than p. It returns
// the ledger size.
func (r *Runner) repair(ctx context.Context, log *slog.Logger, p puzzle.Puzzle) (int, error) {
	var repaired []string

	current, err := r.store.LoadCurrentPuzzle(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound) || (err == nil && current.Date < p.Date):
		if err := r.store.SaveCurrentPuzzle(ctx, p); err != nil {
			return 0, err
		}
		repaired = append(repaired, store.CurrentPuzzleKey)
	case err != nil:
		return 0, err
	}

	used, err := r.store.LoadUsedWords(ctx)
	if err != nil {
		return 0, err
	}
	var missing []string
	for _, w := range p.Words() {
		if !used.Contains(w) {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		used = used.With(missing...)
		if err := r.store.SaveUsedWords(ctx, used); err != nil {
			return 0, err
		}
		repaired = append(repaired, store.UsedWordsKey)
	}

	if len(repaired) > 0 {
		log.Warn("repaired records of an earlier partial write",
			"repaired", repaired,
			"missing_words", missing,
		)
		metrics.RecordRepair()
		metrics.SetLedgerSize(used.Len())
	}
	return used.Len(), nil
}

// partial records a run that stored some records but not all. stage names
// the last record stored.
func (r *Runner) partial(log *slog.Logger, out Outcome, stage string, written []string, err error) (Outcome, error) {
	log.Error("generation partially written", "written", written, "error", err)
	metrics.RecordPartialWrite(stage)
	metrics.RecordGeneration(metrics.ResultError)
	return out, fmt.Errorf("partial write after %v: %w", written, err)
}

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
