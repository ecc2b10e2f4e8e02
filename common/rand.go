package common

import "math/rand/v2"

// Rand is the random source gameplay rolls draw from.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// NewRand returns a seeded PCG source so simulations can be replayed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandRange returns a uniform value in [min, max).
func RandRange(r Rand, min, max float64) float64 {
	if r == nil {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Roll100 returns a uniform draw in [0, 100).
func Roll100(r Rand) float64 {
	return RandRange(r, 0, 100)
}

// FixedRand replays a fixed sequence of draws, cycling when exhausted.
type FixedRand struct {
	Values []float64
	next   int
}

func (f *FixedRand) Float64() float64 {
	if f == nil || len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}
