package puzzle

import (
	"encoding/json"
	"slices"
	"strings"
)

// Ledger is the set of words that have appeared in any puzzle.
//
// A Ledger is a value: With returns a new ledger and never mutates the
// receiver, so a snapshot handed to Compose stays valid after the run.
// Words are compared case-insensitively via their upper-case form.
type Ledger struct {
	words map[string]struct{}
}

// NewLedger builds a ledger from words.
func NewLedger(words ...string) Ledger {
	l := Ledger{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		l.words[Canonical(w)] = struct{}{}
	}
	return l
}

// Canonical returns the ledger key of a word.
func Canonical(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Contains reports whether word was already used.
func (l Ledger) Contains(word string) bool {
	_, ok := l.words[Canonical(word)]
	return ok
}

// Len is the number of used words.
func (l Ledger) Len() int {
	return len(l.words)
}

// With returns a copy of l that also contains words.
func (l Ledger) With(words ...string) Ledger {
	next := Ledger{words: make(map[string]struct{}, len(l.words)+len(words))}
	for w := range l.words {
		next.words[w] = struct{}{}
	}
	for _, w := range words {
		next.words[Canonical(w)] = struct{}{}
	}
	return next
}

// Words returns the used words sorted ascending.
func (l Ledger) Words() []string {
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

type ledgerJSON struct {
	UsedWords []string `json:"used_words"`
}

// MarshalJSON encodes the ledger as {"used_words": [...]}.
func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerJSON{UsedWords: l.Words()})
}

// UnmarshalJSON decodes {"used_words": [...]}; a missing list is an empty ledger.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw ledgerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = NewLedger(raw.UsedWords...)
	return nil
}
