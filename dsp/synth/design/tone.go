package design

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// ToneCoefficients holds the two-pole resonator recurrence
//
//	x[n] = A0*x[n-1] + A1*x[n-2]
//	y[n] = C*x[n-1]
type ToneCoefficients struct {
	A0, A1 float64
	C      float64
	// Omega is the pole angle pi*2f/fs, kept for the initial-condition solver.
	Omega float64
}

// ToneState is the pair of resonator registers (x[n-1], x[n-2]).
type ToneState struct {
	X1, X2 float64
}

// Tone designs a resonator ringing at freqHz whose envelope decays at rate
// damping (1/s).
//
// With d = exp(-damping/fs) and c = -d*cos(omega), the output gain is
// b = sqrt(d^2 - c^2). The radicand is never negative: |c| = d*|cos(omega)|
// <= d holds for the real numbers and survives rounding because IEEE
// multiplication is monotone, so fl(c*c) <= fl(d*d).
func Tone(freqHz, damping, sampleRate float64) ToneCoefficients {
	nu := NormalizedFrequency(freqHz, sampleRate)
	d := exactDecay(damping, sampleRate)
	om := math.Pi * nu
	c := -d * math.Cos(om)
	b := math.Sqrt(d*d - c*c)

	return ToneCoefficients{
		A0:    -2 * c,
		A1:    -d * d,
		C:     b,
		Omega: om,
	}
}

// ToneInitial solves the registers so that the first two outputs are
// cos(psi) and cos(omega+psi), psi being phaseDeg in radians. The oscillator
// therefore starts on the commanded phase without a settling transient.
//
// At DC and Nyquist the resonator has zero output gain and no phase to
// honour; the registers are cleared and the tone stays silent. The same holds
// when the decay is so steep that the registers cannot be represented.
func ToneInitial(coeffs ToneCoefficients, phaseDeg float64) ToneState {
	if coeffs.C == 0 || coeffs.A1 == 0 {
		return ToneState{}
	}

	psi := core.DegToRad(phaseDeg)
	x10 := math.Cos(psi) / coeffs.C
	x11 := math.Cos(coeffs.Omega+psi) / coeffs.C
	x20 := (x11 - coeffs.A0*x10) / coeffs.A1
	if !core.IsFinite(x10) || !core.IsFinite(x20) {
		return ToneState{}
	}

	return ToneState{X1: x10, X2: x20}
}
