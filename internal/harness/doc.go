// Package harness replays multi-day generation scenarios against a fresh
// in-memory store.
//
// A scenario is a YAML file naming a corpus (a JSON file or an inline word
// map), an optional starting ledger and a list of dates to generate. Each
// date goes through the same path production uses: the corpus is validated
// and normalized as `qiyaas corpus import` does, then trigger.Runner
// generates and stores the puzzle. The harness records one Step per date.
//
// Steps are checked two ways. Per-day expect clauses assert words, skips,
// reroll counts and errors; RunWithGolden compares the whole trace against
// testdata/golden/<name>.golden. Run ids come from testutil.SequenceIDs, so
// traces are byte-stable.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
package harness
