package design

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

const (
	// VanDerPolStiffness is the fixed nonlinearity epsilon.
	VanDerPolStiffness = 1.9
	// VanDerPolMinFrequency is the lowest frequency the step size is derived from.
	VanDerPolMinFrequency = 100.0
)

// VanDerPolCoefficients are the linearized step coefficients of
//
//	p' = q
//	q' = -p + eps*(1-p^2)*q
//
// discretized with step size Step.
type VanDerPolCoefficients struct {
	Psi, Phi float64
	Step     float64
	Decay    float64
}

// VanDerPolState is the (p, q) pair plus the output envelope.
type VanDerPolState struct {
	P, Q     float64
	Envelope float64
}

// VanDerPol designs the step coefficients for freqHz. The frequency is clamped
// to [VanDerPolMinFrequency, fs/2] and sets the step size T = f/fs. psi and
// phi come from the closed-form solution of the linear part with eigenvalues
// alpha +/- i*beta, alpha = eps/2.
func VanDerPol(freqHz, damping, sampleRate float64) VanDerPolCoefficients {
	const eps = VanDerPolStiffness
	alpha := eps / 2
	beta := math.Sqrt(1 - alpha*alpha)

	f := core.Clamp(freqHz, VanDerPolMinFrequency, core.Nyquist(sampleRate))
	t := f / sampleRate
	c1 := math.Exp(alpha * t)
	c2 := beta * t

	return VanDerPolCoefficients{
		Psi:   (c1*(math.Cos(c2)-eps*math.Sin(c2)/2/beta) - 1) / t,
		Phi:   c1 * math.Sin(c2) / beta / t,
		Step:  t,
		Decay: DecayFactor(damping, sampleRate),
	}
}

// VanDerPolInitial returns the fixed starting point p=1, q=0. The relaxation
// cycle has no meaningful phase parameter.
func VanDerPolInitial() VanDerPolState {
	return VanDerPolState{P: 1, Q: 0, Envelope: 1}
}
