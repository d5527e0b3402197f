package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qiyaas/internal/puzzle"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestValidate_Valid(t *testing.T) {
	c, errs := Validate("valid.json", readFixture(t, "valid.json"))
	require.Empty(t, errs)
	assert.Equal(t, []string{"cat", "apple", "banana"}, c[puzzle.Noun])
	assert.Equal(t, []string{"big", "smart", "interesting"}, c[puzzle.Adjective])
}

func TestValidate_MissingCategoryAllowed(t *testing.T) {
	c, errs := Validate("partial.json", []byte(`{"noun": ["cat"]}`))
	require.Empty(t, errs)
	assert.Nil(t, c[puzzle.Verb])
}

func TestValidate_UnknownCategory(t *testing.T) {
	_, errs := Validate("unknown_category.json", readFixture(t, "unknown_category.json"))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrSchemaFailure, errs[0].Code)
	assert.Contains(t, errs[0].Error(), "adverb")
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"not json", `{"noun": [`, ErrInvalidJSON},
		{"word not string", `{"noun": ["cat", 7]}`, ErrSchemaFailure},
		{"list not array", `{"verb": "run"}`, ErrSchemaFailure},
		{"empty word", `{"adjective": [""]}`, ErrSchemaFailure},
		{"top level array", `["cat"]`, ErrSchemaFailure},
		{"no words", `{"noun": [], "verb": []}`, ErrEmptyCorpus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Validate("corpus.json", []byte(tt.data))
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.code, errs[0].Code, "errors: %v", errs)
		})
	}
}

func TestValidationError_Format(t *testing.T) {
	e := ValidationError{Field: "noun.1", Message: "conflicting values", Code: ErrSchemaFailure, Line: 3}
	assert.Equal(t, "[E202] line 3: noun.1: conflicting values", e.Error())

	e.Line = 0
	assert.Equal(t, "[E202] noun.1: conflicting values", e.Error())
}

func TestNormalize(t *testing.T) {
	in := puzzle.Corpus{
		puzzle.Noun:      {"banana", " apple ", "Apple", "cat", "ox", "stegosaurus", "north", "t-rex"},
		puzzle.Verb:      {"run", "arrive", "Organize", "seven"},
		puzzle.Adjective: {"big", "smart", "nasty", "café"},
		"adverb":         {"quickly"},
	}

	out, report := NewNormalizer([]string{"nasty"}).Normalize(in)

	assert.Equal(t, []string{"APPLE", "BANANA", "CAT"}, out[puzzle.Noun])
	assert.Equal(t, []string{"ARRIVE", "ORGANIZE", "RUN"}, out[puzzle.Verb])
	assert.Equal(t, []string{"BIG", "CAFÉ", "SMART"}, out[puzzle.Adjective])
	assert.NotContains(t, out, puzzle.Category("adverb"))

	assert.Equal(t, map[puzzle.Category]int{puzzle.Noun: 3, puzzle.Verb: 3, puzzle.Adjective: 3}, report.Kept)
	assert.Equal(t, map[string]int{
		DropDuplicate:  1, // Apple
		DropLength:     2, // ox, stegosaurus
		DropExcluded:   2, // north, seven
		DropNotLetters: 1, // t-rex
		DropBlocked:    1, // nasty
	}, report.Dropped)
}

func TestNormalize_ComposedForm(t *testing.T) {
	// "cafe" + combining acute accent normalizes to the single-rune form.
	out, _ := NewNormalizer(nil).Normalize(puzzle.Corpus{puzzle.Adjective: {"cafe\u0301"}})
	require.Len(t, out[puzzle.Adjective], 1)
	assert.Equal(t, "CAFÉ", out[puzzle.Adjective][0])
	assert.Equal(t, 4, puzzle.WordLength(out[puzzle.Adjective][0]))
}

func TestNormalize_MissingCategoriesEmpty(t *testing.T) {
	out, report := NewNormalizer(nil).Normalize(puzzle.Corpus{puzzle.Noun: {"cat"}})
	assert.Equal(t, []string{}, out[puzzle.Verb])
	assert.Equal(t, 0, report.Kept[puzzle.Adjective])
}

func TestReadBlocklist(t *testing.T) {
	words, err := ReadBlocklist(strings.NewReader("# comment\nnasty\n\n  Rude  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nasty", "Rude"}, words)

	out, _ := NewNormalizer(words).Normalize(puzzle.Corpus{puzzle.Adjective: {"rude", "kind"}})
	assert.Equal(t, []string{"KIND"}, out[puzzle.Adjective])
}

func TestStats(t *testing.T) {
	c, errs := Validate("valid.json", readFixture(t, "valid.json"))
	require.Empty(t, errs)

	stats := Stats(c)
	require.Len(t, stats, 3)
	assert.Equal(t, CategoryStats{Category: puzzle.Noun, Short: 2, Medium: 1, Long: 0, Total: 3}, stats[0])
	assert.Equal(t, CategoryStats{Category: puzzle.Verb, Short: 1, Medium: 1, Long: 1, Total: 3}, stats[1])
	assert.Equal(t, CategoryStats{Category: puzzle.Adjective, Short: 2, Medium: 0, Long: 0, Total: 2}, stats[2])
}
