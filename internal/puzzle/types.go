package puzzle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ClueCount is the number of clues in every puzzle.
const ClueCount = 3

// Category is a grammatical category of the corpus.
type Category string

const (
	Noun      Category = "noun"
	Verb      Category = "verb"
	Adjective Category = "adjective"
)

// Categories returns the categories in composition order.
func Categories() []Category {
	return []Category{Noun, Verb, Adjective}
}

// ClueType is the upper-case label used on clues ("NOUN", "VERB", "ADJECTIVE").
func (c Category) ClueType() string {
	return strings.ToUpper(string(c))
}

// ParseClueType converts a clue label back to its category.
func ParseClueType(s string) (Category, error) {
	for _, c := range Categories() {
		if c.ClueType() == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown clue type %q", s)
}

// Bucket is a word length category.
type Bucket string

const (
	Short  Bucket = "short"  // 3-5 letters
	Medium Bucket = "medium" // 6-7 letters
	Long   Bucket = "long"   // 8-9 letters
)

// Buckets returns the buckets in the order they are shuffled from.
func Buckets() []Bucket {
	return []Bucket{Short, Medium, Long}
}

// BucketOf returns the bucket for a word length. Lengths outside 3..9 have no bucket.
func BucketOf(length int) (Bucket, bool) {
	switch {
	case length >= 3 && length <= 5:
		return Short, true
	case length >= 6 && length <= 7:
		return Medium, true
	case length >= 8 && length <= 9:
		return Long, true
	}
	return "", false
}

// WordLength counts letters, not bytes.
func WordLength(word string) int {
	return utf8.RuneCountInString(word)
}

// Corpus maps each category to its ordered word list.
type Corpus map[Category][]string

// Clue is one puzzle entry.
type Clue struct {
	Type           string `json:"type"`
	Word           string `json:"word"`
	Rule           Rule   `json:"rule"`
	Number         int    `json:"number"`
	LengthCategory Bucket `json:"length_category"`
	WordLength     int    `json:"word_length"`
}

// Category returns the clue's grammatical category.
func (c Clue) Category() (Category, error) {
	return ParseClueType(c.Type)
}

// Puzzle is the published puzzle for one date.
type Puzzle struct {
	Date  string `json:"date"`
	Clues []Clue `json:"clues"`
}

// Words returns the clue words in display order.
func (p Puzzle) Words() []string {
	words := make([]string, len(p.Clues))
	for i, c := range p.Clues {
		words[i] = c.Word
	}
	return words
}

func newClue(category Category, word string, rule Rule, bucket Bucket) Clue {
	return Clue{
		Type:           category.ClueType(),
		Word:           word,
		Rule:           rule,
		Number:         rule.Apply(word),
		LengthCategory: bucket,
		WordLength:     WordLength(word),
	}
}
