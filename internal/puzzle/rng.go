package puzzle

import "unicode/utf16"

// LCG constants of the reference generator.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Generator is a seeded linear congruential generator.
//
// It is deterministic and not safe for concurrent use. It has no
// cryptographic properties and must never be used for secrets.
type Generator struct {
	value int64
}

// HashSeed derives a seed from a string with a 32-bit rolling hash
// (h = h*31 + c, wrapping) over UTF-16 code units, then takes the absolute value.
func HashSeed(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	seed := int64(h)
	if seed < 0 {
		seed = -seed
	}
	return seed
}

// NewGenerator returns a generator starting at seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{value: seed}
}

// Seed returns a generator seeded from the hash of s.
func Seed(s string) *Generator {
	return NewGenerator(HashSeed(s))
}

// Next advances the state and returns a float in [0, 1).
func (g *Generator) Next() float64 {
	g.value = (g.value*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.value) / lcgModulus
}

// Intn returns floor(Next() * n). n must be positive.
func (g *Generator) Intn(n int) int {
	return int(g.Next() * float64(n))
}

// Shuffle returns a Fisher-Yates permuted copy of items. The input is not modified.
func Shuffle[T any](items []T, g *Generator) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
