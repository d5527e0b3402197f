package puzzle

import (
	"fmt"
	"unicode"
)

// Rule maps a word to its clue number in 1..9.
//
// The set of rules is closed. The declaration order is the order rules are
// shuffled from and must not change, or published puzzles stop reproducing.
type Rule int

const (
	// LengthRule is the word length mod 9, with 0 mapped to 9.
	LengthRule Rule = iota
	// AlphabetRule is the 1-based alphabet position of the first letter (A-I).
	AlphabetRule
	// NumberRule maps the first letter of a number name: O=1 T=2 F=4 S=6 E=8 N=9.
	NumberRule
)

var ruleNames = [...]string{
	LengthRule:   "length_rule",
	AlphabetRule: "alphabet_rule",
	NumberRule:   "number_rule",
}

var numberLetters = map[rune]int{'O': 1, 'T': 2, 'F': 4, 'S': 6, 'E': 8, 'N': 9}

// AllRules returns every rule in declaration order.
func AllRules() []Rule {
	return []Rule{LengthRule, AlphabetRule, NumberRule}
}

// ParseRule looks a rule up by name.
func ParseRule(name string) (Rule, error) {
	for i, n := range ruleNames {
		if n == name {
			return Rule(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rule %q", name)
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return fmt.Sprintf("Rule(%d)", int(r))
	}
	return ruleNames[r]
}

// MarshalText encodes the rule as its name.
func (r Rule) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(ruleNames) {
		return nil, fmt.Errorf("invalid rule %d", int(r))
	}
	return []byte(ruleNames[r]), nil
}

// UnmarshalText decodes a rule name.
func (r *Rule) UnmarshalText(text []byte) error {
	parsed, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Eligible reports whether the rule can number the word. Only the letter
// based rules restrict the first letter.
func (r Rule) Eligible(word string) bool {
	switch r {
	case AlphabetRule:
		first := firstLetter(word)
		return first >= 'A' && first <= 'I'
	case NumberRule:
		_, ok := numberLetters[firstLetter(word)]
		return ok
	}
	return word != ""
}

// Apply computes the clue number. The result is only meaningful for eligible
// words; ineligible words yield 0.
func (r Rule) Apply(word string) int {
	switch r {
	case LengthRule:
		if n := WordLength(word) % 9; n != 0 {
			return n
		}
		return 9
	case AlphabetRule:
		first := firstLetter(word)
		if first < 'A' || first > 'I' {
			return 0
		}
		return int(first-'A') + 1
	case NumberRule:
		return numberLetters[firstLetter(word)]
	}
	return 0
}

func firstLetter(word string) rune {
	for _, r := range word {
		return unicode.ToUpper(r)
	}
	return 0
}
