// Package puzzle builds the daily word puzzle.
//
// Everything here is a pure function of its explicit inputs: the corpus, the
// ledger of used words and the date string. Nothing reads storage or the wall
// clock, so the same inputs always produce the same Puzzle.
//
// Pipeline:
//   - Classify groups the corpus by category and length bucket
//   - Compose seeds a Generator from the date, shuffles rule and bucket order,
//     picks one word per category, shuffles display order and optionally
//     rerolls one clue when numbers collide
//   - The returned Ledger carries the newly used words; the input is untouched
//
// The generator is bit-compatible with the reference scheduler, so a given
// date string maps to the same sequence of draws on every platform.
package puzzle
