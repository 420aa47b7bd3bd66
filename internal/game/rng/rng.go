// Package rng provides the randomness abstraction used by combat rolls,
// loot drops, and name generation.
package rng

// Source is the randomness provider for game rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// IntBetween returns a uniform random int in [min, max] inclusive.
//
// Precondition: src must be non-nil; min <= max.
func IntBetween(src Source, min, max int) int {
	spread := max - min
	if spread == 0 {
		return min
	}
	return min + src.Intn(spread+1)
}

// Chance reports whether a roll against probability p succeeds.
// p <= 0 never succeeds; p >= 1 always succeeds.
//
// Precondition: src must be non-nil.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	// 1e6 buckets gives plenty of resolution for catalog drop chances.
	return src.Intn(1_000_000) < int(p*1_000_000)
}
