// Package random provides the injectable random source used by generation
// and placement.
//
// Every random draw in LowPop goes through a [Source], so tests and hosts
// control determinism. A *math/rand/v2.Rand satisfies Source directly:
//
//	src := random.New(42)              // seeded PCG
//	v := random.IntRange(src, 1, 100)  // [1, 100)
package random

import (
	"math"
	"math/rand/v2"
)

// Source is the minimal random generator LowPop draws from.
type Source interface {
	// IntN returns a uniform int in [0, n). n is always > 0.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// New returns a PCG-backed source seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSeed draws a fresh non-zero seed from the global generator.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// IntRange returns a uniform int in the half-open range [lo, hi).
// A degenerate range (hi <= lo) returns lo without drawing.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}

// IntBetween returns a uniform int in the closed range [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	return IntRange(src, lo, hi+1)
}

// FloatRange returns a uniform float64 in [lo, hi).
// A degenerate range (hi <= lo) returns lo without drawing.
func FloatRange(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// Quantize rounds v to the given number of decimal places.
// A negative precision leaves v untouched.
func Quantize(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}

// QuantizeDown truncates v toward negative infinity at the given number of
// decimal places. A negative precision leaves v untouched.
func QuantizeDown(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(precision))
	return math.Floor(v*scale) / scale
}
