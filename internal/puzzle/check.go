package puzzle

import (
	"fmt"
	"time"
)

// DateLayout is the calendar day format used for puzzle dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a real calendar day in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Check audits a stored puzzle and returns one message per broken property.
// An empty result means the puzzle is well formed.
//
// A RerollLast repair that landed on a non-adjective slot shows up here as a
// repeated rule, bucket and type.
func Check(p Puzzle) []string {
	var problems []string
	if !ValidDate(p.Date) {
		problems = append(problems, fmt.Sprintf("invalid date %q", p.Date))
	}
	if len(p.Clues) != ClueCount {
		return append(problems, fmt.Sprintf("expected %d clues, got %d", ClueCount, len(p.Clues)))
	}

	rules := map[Rule]int{}
	buckets := map[Bucket]int{}
	types := map[string]int{}
	words := map[string]int{}
	for i, c := range p.Clues {
		rules[c.Rule]++
		buckets[c.LengthCategory]++
		types[c.Type]++
		words[Canonical(c.Word)]++

		if _, err := c.Category(); err != nil {
			problems = append(problems, fmt.Sprintf("clue %d: %v", i, err))
		}
		if !c.Rule.Eligible(c.Word) {
			problems = append(problems, fmt.Sprintf("clue %d: %q is not eligible for %s", i, c.Word, c.Rule))
		}
		if n := c.Rule.Apply(c.Word); n != c.Number {
			problems = append(problems, fmt.Sprintf("clue %d: number %d, %s gives %d", i, c.Number, c.Rule, n))
		}
		if n := WordLength(c.Word); n != c.WordLength {
			problems = append(problems, fmt.Sprintf("clue %d: word_length %d, word has %d letters", i, c.WordLength, n))
		}
		if b, ok := BucketOf(c.WordLength); !ok || b != c.LengthCategory {
			problems = append(problems, fmt.Sprintf("clue %d: length %d is not %s", i, c.WordLength, c.LengthCategory))
		}
	}

	for _, r := range AllRules() {
		if rules[r] != 1 {
			problems = append(problems, fmt.Sprintf("rule %s used %d times", r, rules[r]))
		}
	}
	for _, b := range Buckets() {
		if buckets[b] != 1 {
			problems = append(problems, fmt.Sprintf("bucket %s used %d times", b, buckets[b]))
		}
	}
	for _, category := range Categories() {
		if types[category.ClueType()] != 1 {
			problems = append(problems, fmt.Sprintf("type %s used %d times", category.ClueType(), types[category.ClueType()]))
		}
	}
	for _, c := range p.Clues {
		w := Canonical(c.Word)
		if n := words[w]; n > 1 {
			problems = append(problems, fmt.Sprintf("word %s used %d times", w, n))
			words[w] = 0
		}
	}
	return problems
}
