// Package corpus imports tagged word lists into the form the composer uses.
//
// Import is two steps: Validate checks a JSON corpus file against the CUE
// schema in schema.cue, and Normalize cleans the word lists (case, length,
// excluded and blocked words, duplicates) and reports what it dropped.
package corpus

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/qiyaas/internal/puzzle"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes.
const (
	ErrInvalidJSON   = "E201" // file does not parse
	ErrSchemaFailure = "E202" // unknown category or non-string word
	ErrEmptyCorpus   = "E203" // no category has any word
)

// ValidationError is one problem found in a corpus file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks data against the corpus schema and decodes it.
// All schema errors are returned, not only the first.
func Validate(filename string, data []byte) (puzzle.Corpus, []ValidationError) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is fixed; failing here is a build defect.
		panic(fmt.Sprintf("corpus schema: %v", err))
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, toValidationErrors(err, ErrInvalidJSON)
	}

	unified := schema.LookupPath(cue.ParsePath("#Corpus")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, toValidationErrors(err, ErrSchemaFailure)
	}

	var raw map[string][]string
	if err := unified.Decode(&raw); err != nil {
		return nil, []ValidationError{{Field: "corpus", Message: err.Error(), Code: ErrSchemaFailure}}
	}

	c := make(puzzle.Corpus, len(raw))
	total := 0
	for name, words := range raw {
		c[puzzle.Category(name)] = words
		total += len(words)
	}
	if total == 0 {
		return nil, []ValidationError{{Field: "corpus", Message: "no words in any category", Code: ErrEmptyCorpus}}
	}
	return c, nil
}

func toValidationErrors(err error, code string) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "corpus"
		}
		format, args := e.Msg()
		ve := ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		}
		if pos := e.Position(); pos.IsValid() {
			ve.Line = pos.Line()
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Field: "corpus", Message: err.Error(), Code: code})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
