package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/qiyaas/internal/corpus"
	"github.com/roach88/qiyaas/internal/store"
)

// CorpusImportOptions holds flags for corpus import.
type CorpusImportOptions struct {
	*RootOptions
	Blocklist string
}

// NewCorpusCommand creates the corpus command group.
func NewCorpusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the tagged word corpus",
	}
	cmd.AddCommand(newCorpusImportCommand(rootOpts))
	cmd.AddCommand(newCorpusStatsCommand(rootOpts))
	return cmd
}

func newCorpusImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CorpusImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate, normalize and store a corpus file",
		Long: `Import a JSON corpus of the form {"noun": [...], "verb": [...], "adjective": [...]}.

Words are upper-cased, must be 3 to 9 letters, and are de-duplicated and
sorted. Directional and number words are always dropped; --blocklist names a
file of further words to drop, one per line. The stored corpus is replaced;
the used-words ledger is kept.

Example:
  qiyaas corpus import words.json --blocklist blocked.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorpusImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Blocklist, "blocklist", "", "file of words to exclude, one per line")

	return cmd
}

func runCorpusImport(opts *CorpusImportOptions, path string, cmd *cobra.Command) error {
	e, err := setup(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	data, err := os.ReadFile(path)
	if err != nil {
		return e.out.Fail(ExitCommandError, ErrCodeCorpus, "failed to read corpus file", err, nil)
	}
	raw, verrs := corpus.Validate(filepath.Base(path), data)
	if len(verrs) > 0 {
		return e.out.Fail(ExitFailure, ErrCodeCorpus, "corpus file is invalid", nil, validationErrors(verrs))
	}

	var blocklist []string
	if opts.Blocklist != "" {
		f, err := os.Open(opts.Blocklist)
		if err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeCorpus, "failed to open blocklist", err, nil)
		}
		blocklist, err = corpus.ReadBlocklist(f)
		f.Close()
		if err != nil {
			return e.out.Fail(ExitCommandError, ErrCodeCorpus, "failed to read blocklist", err, nil)
		}
	}

	normalized, report := corpus.NewNormalizer(blocklist).Normalize(raw)
	e.out.VerboseLog("kept %v, dropped %v", report.Kept, report.Dropped)

	if err := e.store.SaveCorpus(commandContext(cmd), normalized); err != nil {
		return e.out.Fail(ExitFailure, ErrCodeStore, "failed to store corpus", err, nil)
	}
	e.logger.Info("corpus imported", "file", path, "kept", report.Kept, "dropped", report.Dropped)

	return e.out.Success(importResult{Report: report, Stats: corpus.Stats(normalized)})
}

func newCorpusStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show bucket sizes of the stored corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer e.close()

			c, err := e.store.LoadCorpus(commandContext(cmd))
			if errors.Is(err, store.ErrCorpusMissing) {
				return e.out.Fail(ExitFailure, ErrCodeNotFound, "no corpus imported", nil, nil)
			}
			if err != nil {
				return e.out.Fail(ExitFailure, ErrCodeStore, "failed to load corpus", err, nil)
			}
			return e.out.Success(statsView(corpus.Stats(c)))
		},
	}
}
