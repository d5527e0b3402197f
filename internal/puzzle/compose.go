package puzzle

import "fmt"

// DefaultRerollProbability is the chance of repairing colliding numbers.
const DefaultRerollProbability = 0.5

// maxDuplicateRerolls bounds RerollDuplicate.
const maxDuplicateRerolls = 2

// RerollStrategy selects how colliding clue numbers are repaired.
type RerollStrategy int

const (
	// RerollLast re-picks the adjective clue and writes it into the last
	// display slot. The two only coincide when the display shuffle left the
	// adjective last; otherwise the clue in the last slot is replaced by a
	// second adjective. Published puzzles were generated this way.
	RerollLast RerollStrategy = iota

	// RerollDuplicate re-picks the later clue of the first colliding pair,
	// keeping that clue's own category, rule and bucket, up to twice.
	RerollDuplicate
)

// ParseRerollStrategy accepts "last" or "duplicate".
func ParseRerollStrategy(s string) (RerollStrategy, error) {
	switch s {
	case "last", "":
		return RerollLast, nil
	case "duplicate":
		return RerollDuplicate, nil
	}
	return 0, fmt.Errorf("unknown reroll strategy %q", s)
}

func (s RerollStrategy) String() string {
	switch s {
	case RerollLast:
		return "last"
	case RerollDuplicate:
		return "duplicate"
	}
	return fmt.Sprintf("RerollStrategy(%d)", int(s))
}

// Options tunes composition.
type Options struct {
	// RerollProbability is compared against a fresh draw when numbers collide.
	RerollProbability float64
	Strategy          RerollStrategy
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{RerollProbability: DefaultRerollProbability, Strategy: RerollLast}
}

// Result is the outcome of one composition.
type Result struct {
	Puzzle Puzzle

	// Ledger is the input ledger plus the words in Puzzle.
	Ledger Ledger

	// Rerolls counts repair picks that were made.
	Rerolls int
}

// Compose builds the puzzle for date.
//
// Draw order is fixed: rule shuffle, bucket shuffle, one pick per category
// (noun, verb, adjective), display shuffle, then the repair draw only when
// numbers collide. Changing it changes every puzzle.
//
// On error nothing is returned and used is unchanged.
func Compose(c Classified, used Ledger, date string, opts Options) (Result, error) {
	g := Seed(date)

	ruleOrder := Shuffle(AllRules(), g)
	lengthOrder := Shuffle(Buckets(), g)

	clues := make([]Clue, 0, ClueCount)
	for i, category := range Categories() {
		clue, err := pickFor(c, category, lengthOrder[i], ruleOrder[i], used, g)
		if err != nil {
			return Result{}, fmt.Errorf("compose %s: %w", date, err)
		}
		clues = append(clues, clue)
	}

	display := Shuffle(clues, g)

	var rerolls int
	switch opts.Strategy {
	case RerollDuplicate:
		for rerolls < maxDuplicateRerolls && !distinctNumbers(display) && g.Next() < opts.RerollProbability {
			idx := laterDuplicate(display)
			target := display[idx]
			category, err := target.Category()
			if err != nil {
				return Result{}, fmt.Errorf("compose %s: %w", date, err)
			}
			clue, err := pickFor(c, category, target.LengthCategory, target.Rule, used, g)
			if err != nil {
				return Result{}, fmt.Errorf("compose %s: reroll: %w", date, err)
			}
			display[idx] = clue
			rerolls++
		}
	default:
		if !distinctNumbers(display) && g.Next() < opts.RerollProbability {
			last := len(clues) - 1
			clue, err := pickFor(c, Categories()[last], lengthOrder[last], ruleOrder[last], used, g)
			if err != nil {
				return Result{}, fmt.Errorf("compose %s: reroll: %w", date, err)
			}
			display[len(display)-1] = clue
			rerolls++
		}
	}

	p := Puzzle{Date: date, Clues: display}
	return Result{
		Puzzle:  p,
		Ledger:  used.With(p.Words()...),
		Rerolls: rerolls,
	}, nil
}

func distinctNumbers(clues []Clue) bool {
	seen := make(map[int]struct{}, len(clues))
	for _, c := range clues {
		if _, ok := seen[c.Number]; ok {
			return false
		}
		seen[c.Number] = struct{}{}
	}
	return true
}

// laterDuplicate returns the index of the second clue of the first pair
// sharing a number, scanning pairs in (i, j) order.
func laterDuplicate(clues []Clue) int {
	for i := 0; i < len(clues); i++ {
		for j := i + 1; j < len(clues); j++ {
			if clues[i].Number == clues[j].Number {
				return j
			}
		}
	}
	return len(clues) - 1
}
