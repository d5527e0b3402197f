package corpus

import "github.com/roach88/qiyaas/internal/puzzle"

// CategoryStats is the bucket breakdown of one category.
type CategoryStats struct {
	Category puzzle.Category `json:"category"`
	Short    int             `json:"short"`
	Medium   int             `json:"medium"`
	Long     int             `json:"long"`
	Total    int             `json:"total"`
}

// Stats reports bucket sizes per category in composition order.
func Stats(c puzzle.Corpus) []CategoryStats {
	counts := puzzle.Classify(c).Counts()
	out := make([]CategoryStats, 0, len(puzzle.Categories()))
	for _, category := range puzzle.Categories() {
		b := counts[category]
		out = append(out, CategoryStats{
			Category: category,
			Short:    b[puzzle.Short],
			Medium:   b[puzzle.Medium],
			Long:     b[puzzle.Long],
			Total:    b[puzzle.Short] + b[puzzle.Medium] + b[puzzle.Long],
		})
	}
	return out
}
