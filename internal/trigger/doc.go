// Package trigger runs daily puzzle generation.
//
// A Runner performs one generation for a date: it loads the corpus and the
// used-words ledger, composes the puzzle and writes the dated record, the
// current pointer and the ledger, in that order. The three writes are not
// atomic; a failure part way is logged naming what was stored, and the next
// run for the same date completes the missing records.
//
// A Scheduler fires the Runner once per day at local midnight of the
// configured zone.
package trigger
