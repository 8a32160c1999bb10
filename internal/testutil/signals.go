package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// QuadraticPhase returns phase[k] = pi*rate*k^2, a phase series whose second
// difference divided by 2*pi equals rate at every index.
func QuadraticPhase(rate float64, length int) []float64 {
	out := make([]float64, length)
	for k := range out {
		fk := float64(k)
		out[k] = math.Pi * rate * fk * fk
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
