package design

import "math"

// NormalizedFrequency returns 2*freqHz/sampleRate, the frequency relative to
// Nyquist. For clamped input the result lies in [0, 1].
func NormalizedFrequency(freqHz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return 2 * freqHz / sampleRate
}

// DecayFactor returns the per-sample envelope multiplier exp(-damping/sampleRate).
// A damping of zero yields exactly 1. Under the fastmath build tag the
// exponential is approximated.
func DecayFactor(damping, sampleRate float64) float64 {
	return decay(damping, sampleRate, mathExp)
}

// exactDecay is DecayFactor at full precision, for resonator poles.
func exactDecay(damping, sampleRate float64) float64 {
	return decay(damping, sampleRate, math.Exp)
}

func decay(damping, sampleRate float64, exp func(float64) float64) float64 {
	if damping == 0 || sampleRate <= 0 {
		return 1
	}
	return exp(-damping / sampleRate)
}
