package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
	"github.com/roach88/qiyaas/internal/testutil"
)

// smallCorpus has exactly one usable combination on 2025-01-19.
func smallCorpus() puzzle.Corpus {
	return puzzle.Corpus{
		puzzle.Noun:      {"cat", "apple", "banana"},
		puzzle.Verb:      {"run", "arrive", "organize"},
		puzzle.Adjective: {"big", "smart", "interesting"},
	}
}

// failingKV fails Put for one key.
type failingKV struct {
	store.KV
	failKey string
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.KV.Put(ctx, key, value)
}

// onceFailKV fails the first Put for one key, then behaves normally.
type onceFailKV struct {
	store.KV
	failKey string
	failed  bool
}

func (f *onceFailKV) Put(ctx context.Context, key string, value []byte) error {
	if key == f.failKey && !f.failed {
		f.failed = true
		return errors.New("disk full")
	}
	return f.KV.Put(ctx, key, value)
}

func openKV(t *testing.T) *store.SQLite {
	t.Helper()
	kv, err := store.OpenSQLite(filepath.Join(t.TempDir(), "trigger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func newTestRunner(t *testing.T, kv store.KV, logs *bytes.Buffer, opts ...Option) (*Runner, *store.Store) {
	t.Helper()
	st := store.New(kv)
	require.NoError(t, st.SaveCorpus(context.Background(), smallCorpus()))

	ids := &testutil.SequenceIDs{}
	base := []Option{
		WithRunIDs(ids.Next),
		WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
	}
	return NewRunner(st, append(base, opts...)...), st
}

func TestRun_GeneratesAndStores(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r, st := newTestRunner(t, openKV(t), &logs)

	out, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, []string{"smart", "organize", "banana"}, out.Puzzle.Words())
	assert.Equal(t, 3, out.Ledger)

	dated, err := st.LoadPuzzle(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.Equal(t, out.Puzzle, dated)

	current, err := st.LoadCurrentPuzzle(ctx)
	require.NoError(t, err)
	assert.Equal(t, out.Puzzle, current)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BANANA", "ORGANIZE", "SMART"}, used.Words())

	assert.Contains(t, logs.String(), `"msg":"puzzle generated"`)
	assert.Contains(t, logs.String(), `"run_id":"run-1"`)
}

func TestRun_SkipsExistingDate(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r, st := newTestRunner(t, openKV(t), &logs)

	first, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)

	second, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Puzzle, second.Puzzle)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, used.Len(), "a skipped run must not consume words")
}

func TestRun_Exhaustion(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r, st := newTestRunner(t, openKV(t), &logs)

	_, err := r.Run(ctx, "2025-01-01")
	require.Error(t, err)
	assert.True(t, puzzle.IsExhaustion(err))

	_, err = st.LoadPuzzle(ctx, "2025-01-01")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.LoadCurrentPuzzle(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Contains(t, logs.String(), `"msg":"generation exhausted"`)
	assert.Contains(t, logs.String(), `"rule":"number_rule"`)
}

func TestRun_CorpusMissing(t *testing.T) {
	var logs bytes.Buffer
	st := store.New(openKV(t))
	r := NewRunner(st, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := r.Run(context.Background(), "2025-01-19")
	assert.ErrorIs(t, err, store.ErrCorpusMissing)
	assert.Contains(t, logs.String(), "generation failed")
}

func TestRun_InvalidDate(t *testing.T) {
	var logs bytes.Buffer
	r, _ := newTestRunner(t, openKV(t), &logs)

	for _, d := range []string{"", "2025-1-19", "2025-13-40", "19-01-2025"} {
		_, err := r.Run(context.Background(), d)
		assert.Error(t, err, d)
	}
}

func TestRun_PartialWriteLeavesLedger(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	kv := &failingKV{KV: openKV(t), failKey: store.UsedWordsKey}
	r, st := newTestRunner(t, kv, &logs)

	_, err := r.Run(ctx, "2025-01-19")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial write")

	_, err = st.LoadPuzzle(ctx, "2025-01-19")
	assert.NoError(t, err, "dated record is written first")
	_, err = st.LoadCurrentPuzzle(ctx)
	assert.NoError(t, err)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, used.Len())

	var entry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "generation partially written" {
			break
		}
	}
	assert.Equal(t, "generation partially written", entry["msg"])
	assert.Equal(t, []any{"puzzle_2025-01-19", "current_puzzle"}, entry["written"])
}

func TestRun_CurrentPointerFailure(t *testing.T) {
	var logs bytes.Buffer
	kv := &failingKV{KV: openKV(t), failKey: store.CurrentPuzzleKey}
	r, _ := newTestRunner(t, kv, &logs)

	_, err := r.Run(context.Background(), "2025-01-19")
	require.Error(t, err)
	assert.Contains(t, logs.String(), `"written":["puzzle_2025-01-19"]`)
}

func TestRun_RetryRepairsLedger(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	kv := &onceFailKV{KV: openKV(t), failKey: store.UsedWordsKey}
	r, st := newTestRunner(t, kv, &logs)

	_, err := r.Run(ctx, "2025-01-19")
	require.Error(t, err)

	out, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, 3, out.Ledger)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	for _, w := range out.Puzzle.Words() {
		assert.True(t, used.Contains(w), "%s missing from ledger after retry", w)
	}
	assert.Equal(t, 3, used.Len())
	assert.Contains(t, logs.String(), `"msg":"repaired records of an earlier partial write"`)
	assert.Contains(t, logs.String(), `"repaired":["used_words"]`)

	// Nothing is left to repair on a third run.
	logs.Reset()
	_, err = r.Run(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "repaired")
}

func TestRun_RetryRepairsCurrentPointer(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	kv := &onceFailKV{KV: openKV(t), failKey: store.CurrentPuzzleKey}
	r, st := newTestRunner(t, kv, &logs)

	_, err := r.Run(ctx, "2025-01-19")
	require.Error(t, err)
	_, err = st.LoadCurrentPuzzle(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	out, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)
	assert.True(t, out.Skipped)

	current, err := st.LoadCurrentPuzzle(ctx)
	require.NoError(t, err)
	assert.Equal(t, out.Puzzle, current)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BANANA", "ORGANIZE", "SMART"}, used.Words())
	assert.Contains(t, logs.String(), `"repaired":["current_puzzle","used_words"]`)
}

func TestRun_RetryKeepsNewerCurrentPointer(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r, st := newTestRunner(t, openKV(t), &logs)

	first, err := r.Run(ctx, "2025-01-19")
	require.NoError(t, err)

	newer := first.Puzzle
	newer.Date = "2025-01-20"
	require.NoError(t, st.SaveCurrentPuzzle(ctx, newer))
	require.NoError(t, st.SaveUsedWords(ctx, puzzle.NewLedger()))

	_, err = r.Run(ctx, "2025-01-19")
	require.NoError(t, err)

	current, err := st.LoadCurrentPuzzle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-20", current.Date, "re-running an old date must not move the pointer back")

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, used.Len())
}

func TestRun_ConcurrentSameDate(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r, st := newTestRunner(t, openKV(t), &logs)

	var wg sync.WaitGroup
	outs := make([]Outcome, 4)
	errs := make([]error, 4)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = r.Run(ctx, "2025-01-19")
		}(i)
	}
	wg.Wait()

	generated := 0
	for i := range outs {
		require.NoError(t, errs[i])
		if !outs[i].Skipped {
			generated++
		}
	}
	assert.Equal(t, 1, generated)

	used, err := st.LoadUsedWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, used.Len())
}

func TestRunToday_UsesZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 03:30 UTC on the 20th is still the 19th in New York.
	clock := testutil.NewFakeClock(time.Date(2025, 1, 20, 3, 30, 0, 0, time.UTC))
	var logs bytes.Buffer
	r, _ := newTestRunner(t, openKV(t), &logs, WithClock(clock.Now), WithLocation(ny))

	assert.Equal(t, "2025-01-19", r.Today())
	out, err := r.RunToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-01-19", out.Date)

	clock.Advance(2 * time.Hour)
	assert.Equal(t, "2025-01-20", r.Today())
}

func TestRun_DefaultRunIDIsUUIDv7(t *testing.T) {
	st := store.New(openKV(t))
	require.NoError(t, st.SaveCorpus(context.Background(), smallCorpus()))
	r := NewRunner(st, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	out, err := r.Run(context.Background(), "2025-01-19")
	require.NoError(t, err)
	assert.Len(t, out.RunID, 36)
	assert.Equal(t, byte('7'), out.RunID[14], "version nibble")
}
