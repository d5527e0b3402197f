package puzzle

// Pick draws one unused, rule-eligible word from bucket.
//
// Candidates keep bucket order, so the draw is reproducible for a given
// generator state. Pick never marks the word used; the caller does that once
// the whole puzzle is final. An empty candidate set returns an
// *ExhaustionError and consumes no draw.
func Pick(bucket []string, rule Rule, used Ledger, g *Generator) (string, error) {
	unused := make([]string, 0, len(bucket))
	for _, w := range bucket {
		if !used.Contains(w) {
			unused = append(unused, w)
		}
	}

	candidates := unused
	if rule != LengthRule {
		candidates = make([]string, 0, len(unused))
		for _, w := range unused {
			if rule.Eligible(w) {
				candidates = append(candidates, w)
			}
		}
	}

	if len(candidates) == 0 {
		return "", &ExhaustionError{Rule: rule, Remaining: len(unused)}
	}
	return candidates[g.Intn(len(candidates))], nil
}

// pickFor picks from the classified corpus and fills in the error context.
func pickFor(c Classified, category Category, bucket Bucket, rule Rule, used Ledger, g *Generator) (Clue, error) {
	word, err := Pick(c.Bucket(category, bucket), rule, used, g)
	if err != nil {
		if ee, ok := err.(*ExhaustionError); ok {
			ee.Category = category
			ee.Bucket = bucket
		}
		return Clue{}, err
	}
	return newClue(category, word, rule, bucket), nil
}
