package corpus

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// Drop reasons reported by Normalize.
const (
	DropNotLetters = "not_letters"
	DropLength     = "length"
	DropExcluded   = "excluded"
	DropBlocked    = "blocked"
	DropDuplicate  = "duplicate"
)

// Directional and number words make poor clues and are always excluded.
var excluded = wordSet(
	"north", "south", "east", "west", "northeast", "northwest", "southeast", "southwest",
	"northern", "southern", "eastern", "western", "left", "right", "up", "down",
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen", "twenty",
	"thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety", "hundred", "thousand",
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth",
)

// Report summarizes a normalization.
type Report struct {
	Kept    map[puzzle.Category]int `json:"kept"`
	Dropped map[string]int          `json:"dropped"`
}

// Normalizer cleans corpus word lists. It is not safe for concurrent use.
type Normalizer struct {
	upper   cases.Caser
	blocked map[string]struct{}
}

// NewNormalizer creates a normalizer with an optional blocklist.
func NewNormalizer(blocklist []string) *Normalizer {
	n := &Normalizer{upper: cases.Upper(language.Und)}
	n.blocked = make(map[string]struct{}, len(blocklist))
	for _, w := range blocklist {
		n.blocked[n.canonical(w)] = struct{}{}
	}
	return n
}

// Normalize returns a corpus where every word is NFC, upper-case, made of
// letters only and 3 to 9 letters long. Each category is de-duplicated and
// sorted. Unknown categories are dropped.
func (n *Normalizer) Normalize(in puzzle.Corpus) (puzzle.Corpus, Report) {
	out := make(puzzle.Corpus, len(puzzle.Categories()))
	report := Report{
		Kept:    make(map[puzzle.Category]int),
		Dropped: make(map[string]int),
	}

	for _, category := range puzzle.Categories() {
		seen := make(map[string]struct{})
		words := []string{}
		for _, raw := range in[category] {
			w := n.canonical(raw)
			if reason := n.reject(w); reason != "" {
				report.Dropped[reason]++
				continue
			}
			if _, dup := seen[w]; dup {
				report.Dropped[DropDuplicate]++
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
		slices.Sort(words)
		out[category] = words
		report.Kept[category] = len(words)
	}
	return out, report
}

func (n *Normalizer) canonical(w string) string {
	return n.upper.String(norm.NFC.String(strings.TrimSpace(w)))
}

func (n *Normalizer) reject(w string) string {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return DropNotLetters
		}
	}
	if l := puzzle.WordLength(w); l < 3 || l > 9 {
		return DropLength
	}
	if _, ok := excluded[w]; ok {
		return DropExcluded
	}
	if _, ok := n.blocked[w]; ok {
		return DropBlocked
	}
	return ""
}

// ReadBlocklist reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func ReadBlocklist(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read blocklist: %w", err)
	}
	return words, nil
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return set
}
