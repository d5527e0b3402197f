package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// Scenario defines a multi-day generation run.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Corpus is a JSON corpus file, relative to the scenario file.
	Corpus string `yaml:"corpus,omitempty"`

	// Words is an inline corpus keyed by category. Mutually exclusive with
	// Corpus. With neither set the store has no corpus.
	Words map[string][]string `yaml:"words,omitempty"`

	// Blocklist is applied during normalization.
	Blocklist []string `yaml:"blocklist,omitempty"`

	// UsedWords seeds the ledger before the first day.
	UsedWords []string `yaml:"used_words,omitempty"`

	Options OptionsSpec `yaml:"options,omitempty"`

	// Days run in order. A date may repeat.
	Days []Day `yaml:"days"`

	// dir is the directory of the scenario file; Corpus resolves against it.
	dir string
}

// OptionsSpec overrides the production composition settings.
type OptionsSpec struct {
	Strategy          string   `yaml:"strategy,omitempty"`
	RerollProbability *float64 `yaml:"reroll_probability,omitempty"`
}

// Day is one generation run.
type Day struct {
	Date   string  `yaml:"date"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect holds the assertions for one day. Unset fields are not checked.
type Expect struct {
	// Words are the clue words in display order.
	Words []string `yaml:"words,omitempty"`

	Skipped bool `yaml:"skipped,omitempty"`

	Rerolls *int `yaml:"rerolls,omitempty"`

	// Problems are the puzzle.Check findings, in order. Empty means the
	// puzzle must pass the audit.
	Problems []string `yaml:"problems,omitempty"`

	// Error is a substring of the run error. Empty means the run must succeed.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected so typos in expect clauses do not pass silently.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the scenario's structure.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if s.Corpus != "" && len(s.Words) > 0 {
		errs = append(errs, errors.New("corpus and words are mutually exclusive"))
	}
	if _, err := s.Options.compose(); err != nil {
		errs = append(errs, err)
	}
	if len(s.Days) == 0 {
		errs = append(errs, errors.New("at least one day is required"))
	}
	for i, d := range s.Days {
		if !puzzle.ValidDate(d.Date) {
			errs = append(errs, fmt.Errorf("days[%d]: invalid date %q", i, d.Date))
		}
	}
	return errors.Join(errs...)
}

func (o OptionsSpec) compose() (puzzle.Options, error) {
	opts := puzzle.DefaultOptions()
	strategy, err := puzzle.ParseRerollStrategy(o.Strategy)
	if err != nil {
		return opts, err
	}
	opts.Strategy = strategy
	if o.RerollProbability != nil {
		p := *o.RerollProbability
		if p < 0 || p > 1 {
			return opts, fmt.Errorf("reroll_probability must be within [0, 1], got %v", p)
		}
		opts.RerollProbability = p
	}
	return opts, nil
}
