package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// marshalRecord encodes a record as compact JSON.
// HTML escaping is disabled so stored bytes match what clients receive.
func marshalRecord(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
