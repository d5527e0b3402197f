package puzzle

import (
	"errors"
	"fmt"
)

// ExhaustionError is returned when a category/bucket/rule combination has no
// eligible unused word left. It is fatal to the generation run.
type ExhaustionError struct {
	Category Category
	Bucket   Bucket
	Rule     Rule

	// Remaining is the number of unused words in the bucket before the rule
	// filter was applied. Zero means the bucket itself is depleted.
	Remaining int
}

func (e *ExhaustionError) Error() string {
	if e.Remaining == 0 {
		return fmt.Sprintf("no unused %s %s words available for %s", e.Bucket, e.Category, e.Rule)
	}
	return fmt.Sprintf("no unused %s %s words eligible for %s (%d unused words fail the rule)",
		e.Bucket, e.Category, e.Rule, e.Remaining)
}

// IsExhaustion returns true if err is or wraps an ExhaustionError.
func IsExhaustion(err error) bool {
	var ee *ExhaustionError
	return errors.As(err, &ee)
}
