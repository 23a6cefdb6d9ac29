package testutil

import (
	"math"
	"math/rand/v2"
)

// NormalDraws returns n unit normal draws from a fixed seed.
func NormalDraws(seed uint64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewPCG(seed, seed+1))
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// Cosine returns amplitude*cos(2*pi*f*n/fs + phase) for n in [0, length).
func Cosine(freqHz, sampleRate, phase, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Cos(step*float64(i)+phase)
	}
	return out
}

// Scale returns a copy of data multiplied by k.
func Scale(data []float64, k float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = k * v
	}
	return out
}
