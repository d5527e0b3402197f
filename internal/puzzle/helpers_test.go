package puzzle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// loadTestCorpus reads testdata/corpus.json.
func loadTestCorpus(t *testing.T) Corpus {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "corpus.json"))
	require.NoError(t, err)
	var c Corpus
	require.NoError(t, json.Unmarshal(data, &c))
	return c
}

// exampleCorpus is the small corpus from the service documentation.
func exampleCorpus() Corpus {
	return Corpus{
		Noun:      {"cat", "apple", "banana"},
		Verb:      {"run", "arrive", "organize"},
		Adjective: {"big", "smart", "interesting"},
	}
}
