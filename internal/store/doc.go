// Package store persists the puzzle service's records in a key-value backend.
//
// Four record kinds are kept, each JSON-encoded under a fixed key:
//   - daily_words_tagged: the tagged corpus
//   - used_words: the ledger of words that have appeared in any puzzle
//   - current_puzzle: the most recently generated puzzle
//   - puzzle_YYYY-MM-DD: one write-once record per date
//
// Two backends implement KV: SQLite (a single kv table in WAL mode) and
// Badger (an embedded LSM directory). Writes are independent; there is no
// multi-key transaction, so callers order their writes so that a partial
// failure never publishes a puzzle without its dated record.
package store
