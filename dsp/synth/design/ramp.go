package design

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// RampSmoothing is the fixed one-pole coefficient that rounds off the ramp
// discontinuity.
const RampSmoothing = 0.99

// RampCoefficients drives the saw and rectangle phase accumulator.
type RampCoefficients struct {
	Increment float64 // phase step per sample, 2f/fs
	Decay     float64 // envelope multiplier per sample
}

// RampState holds the ramp phase in [-1, 1], the smoothed output and the
// envelope.
type RampState struct {
	Phase    float64
	Smoothed float64
	Envelope float64
}

// Ramp designs the accumulator for freqHz and envelope damping.
func Ramp(freqHz, damping, sampleRate float64) RampCoefficients {
	return RampCoefficients{
		Increment: NormalizedFrequency(freqHz, sampleRate),
		Decay:     DecayFactor(damping, sampleRate),
	}
}

// RampInitial maps phaseDeg onto the ramp: 0 deg starts at -1, 180 deg at +1.
func RampInitial(phaseDeg float64) RampState {
	psi := core.DegToRad(phaseDeg)
	return RampState{
		Phase:    2*psi/math.Pi - 1,
		Smoothed: 0,
		Envelope: 1,
	}
}
