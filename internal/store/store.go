package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// Record keys.
const (
	CorpusKey        = "daily_words_tagged"
	UsedWordsKey     = "used_words"
	CurrentPuzzleKey = "current_puzzle"
	PuzzlePrefix     = "puzzle_"
)

var (
	// ErrCorpusMissing means no corpus has been imported; generation cannot run.
	ErrCorpusMissing = errors.New("corpus not found in store")

	// ErrPuzzleExists is returned when a dated record is written twice.
	ErrPuzzleExists = errors.New("puzzle already stored for date")
)

// PuzzleKey returns the dated record key for date.
func PuzzleKey(date string) string {
	return PuzzlePrefix + date
}

// Store provides the persisted records of the puzzle service on top of a KV
// backend. It holds no state of its own and is safe for concurrent use when
// the backend is.
type Store struct {
	kv KV
}

// New wraps a backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// LoadCorpus returns the stored corpus or ErrCorpusMissing.
func (s *Store) LoadCorpus(ctx context.Context) (puzzle.Corpus, error) {
	var c puzzle.Corpus
	if err := s.getJSON(ctx, CorpusKey, &c); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCorpusMissing
		}
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return c, nil
}

// SaveCorpus replaces the stored corpus.
func (s *Store) SaveCorpus(ctx context.Context, c puzzle.Corpus) error {
	if err := s.putJSON(ctx, CorpusKey, c); err != nil {
		return fmt.Errorf("save corpus: %w", err)
	}
	return nil
}

// LoadUsedWords returns the ledger. A missing record is an empty ledger.
func (s *Store) LoadUsedWords(ctx context.Context) (puzzle.Ledger, error) {
	var l puzzle.Ledger
	if err := s.getJSON(ctx, UsedWordsKey, &l); err != nil {
		if errors.Is(err, ErrNotFound) {
			return puzzle.NewLedger(), nil
		}
		return puzzle.Ledger{}, fmt.Errorf("load used words: %w", err)
	}
	return l, nil
}

// SaveUsedWords replaces the ledger record.
func (s *Store) SaveUsedWords(ctx context.Context, l puzzle.Ledger) error {
	if err := s.putJSON(ctx, UsedWordsKey, l); err != nil {
		return fmt.Errorf("save used words: %w", err)
	}
	return nil
}

// SavePuzzle writes the dated record. Dated records are write-once: a second
// write for the same date returns ErrPuzzleExists and changes nothing.
func (s *Store) SavePuzzle(ctx context.Context, date string, p puzzle.Puzzle) error {
	data, err := marshalRecord(p)
	if err != nil {
		return fmt.Errorf("save puzzle %s: %w", date, err)
	}
	written, err := s.kv.PutIfAbsent(ctx, PuzzleKey(date), data)
	if err != nil {
		return fmt.Errorf("save puzzle %s: %w", date, err)
	}
	if !written {
		return fmt.Errorf("save puzzle %s: %w", date, ErrPuzzleExists)
	}
	return nil
}

// SaveCurrentPuzzle overwrites the current pointer.
func (s *Store) SaveCurrentPuzzle(ctx context.Context, p puzzle.Puzzle) error {
	if err := s.putJSON(ctx, CurrentPuzzleKey, p); err != nil {
		return fmt.Errorf("save current puzzle: %w", err)
	}
	return nil
}

// LoadPuzzle returns the dated record or ErrNotFound.
func (s *Store) LoadPuzzle(ctx context.Context, date string) (puzzle.Puzzle, error) {
	var p puzzle.Puzzle
	if err := s.getJSON(ctx, PuzzleKey(date), &p); err != nil {
		return puzzle.Puzzle{}, fmt.Errorf("load puzzle %s: %w", date, err)
	}
	return p, nil
}

// LoadCurrentPuzzle returns the current pointer or ErrNotFound.
func (s *Store) LoadCurrentPuzzle(ctx context.Context) (puzzle.Puzzle, error) {
	var p puzzle.Puzzle
	if err := s.getJSON(ctx, CurrentPuzzleKey, &p); err != nil {
		return puzzle.Puzzle{}, fmt.Errorf("load current puzzle: %w", err)
	}
	return p, nil
}

// ListPuzzleDates returns the dates of all dated records, oldest first.
func (s *Store) ListPuzzleDates(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, PuzzlePrefix)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, PuzzlePrefix))
	}
	return dates, nil
}

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := marshalRecord(v)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, key, data)
}
