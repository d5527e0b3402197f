package puzzle

// Classified holds the corpus grouped by category and bucket.
// Word order within a bucket follows the corpus order.
type Classified map[Category]map[Bucket][]string

// Classify buckets every word by length. Words shorter than 3 or longer than 9
// letters are dropped, and missing categories yield empty buckets.
func Classify(corpus Corpus) Classified {
	out := make(Classified, len(Categories()))
	for _, category := range Categories() {
		buckets := map[Bucket][]string{Short: {}, Medium: {}, Long: {}}
		for _, word := range corpus[category] {
			if b, ok := BucketOf(WordLength(word)); ok {
				buckets[b] = append(buckets[b], word)
			}
		}
		out[category] = buckets
	}
	return out
}

// Bucket returns the words for one category and bucket.
func (c Classified) Bucket(category Category, bucket Bucket) []string {
	return c[category][bucket]
}

// Counts reports bucket sizes per category.
func (c Classified) Counts() map[Category]map[Bucket]int {
	out := make(map[Category]map[Bucket]int, len(c))
	for category, buckets := range c {
		counts := make(map[Bucket]int, len(buckets))
		for b, words := range buckets {
			counts[b] = len(words)
		}
		out[category] = counts
	}
	return out
}
