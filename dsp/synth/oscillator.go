package synth

import (
	"github.com/cwbudde/algo-tonegen/dsp/filter/fir"
	"github.com/cwbudde/algo-tonegen/dsp/synth/design"
)

// voice is the coefficient and recursion state of one family. Only the
// fields belonging to its family are used.
type voice struct {
	family Family
	ready  bool

	tone      design.ToneCoefficients
	toneState design.ToneState

	ramp      design.RampCoefficients
	rampState design.RampState

	vdp      design.VanDerPolCoefficients
	vdpState design.VanDerPolState

	// Noise shaping: brown integrator, violet previous draw, the FIR
	// weighting of colored pink and gray, and the register of the recursive
	// pink filter. reg[0] is the newest entry.
	level    float64
	weight   float64
	outGain  float64
	taps     []float64
	shaper   *fir.Filter
	reg      []float64
	feedback bool
}

func newVoice(f Family, variant Variant) *voice {
	v := &voice{family: f}
	switch f {
	case FamilyPink:
		if variant == VariantColored {
			v.taps = design.BinomialTaps(design.PinkTaps, design.PinkAlphaColored)
		} else {
			v.taps = design.BinomialTaps(design.PinkTaps, design.PinkAlphaGenerator)
			v.weight = design.PinkWeightGenerator
			v.feedback = true
		}
	case FamilyGray:
		v.taps = append([]float64(nil), design.GrayTaps[:]...)
	}
	switch {
	case v.feedback:
		v.reg = make([]float64, len(v.taps)+1)
	case v.taps != nil:
		v.shaper = fir.New(append([]float64{0}, v.taps...))
	}
	return v
}

// design derives coefficients from p. Recursion state is left alone.
func (v *voice) design(p Params, variant Variant) {
	switch v.family {
	case FamilyTone:
		v.tone = design.Tone(p.Frequency, p.Damping, p.SampleRate)
	case FamilySaw, FamilyRect:
		v.ramp = design.Ramp(p.Frequency, p.Damping, p.SampleRate)
	case FamilyVanDerPol:
		v.vdp = design.VanDerPol(p.Frequency, p.Damping, p.SampleRate)
	case FamilyBrown:
		if variant == VariantColored {
			v.weight, v.outGain = design.BrownWeightColored, design.BrownGainColored
		} else {
			v.weight, v.outGain = design.BrownWeightGenerator, 1
		}
	}
}

// initialize resets the recursion state for the phase in p.
func (v *voice) initialize(p Params) {
	switch v.family {
	case FamilyTone:
		v.toneState = design.ToneInitial(v.tone, p.Phase)
	case FamilySaw, FamilyRect:
		v.rampState = design.RampInitial(p.Phase)
	case FamilyVanDerPol:
		v.vdpState = design.VanDerPolInitial()
	}
	v.level = 0
	clear(v.reg)
	if v.shaper != nil {
		v.shaper.Reset()
	}
	v.ready = true
}

func (v *voice) stepTone() float64 {
	s := &v.toneState
	out := v.tone.C * s.X1
	next := v.tone.A0*s.X1 + v.tone.A1*s.X2
	s.X2 = s.X1
	s.X1 = next
	return out
}

// stepRamp emits the smoothed target times the envelope, then advances the
// phase, wrapping past +1 to -1.
func (v *voice) stepRamp(target float64) float64 {
	s := &v.rampState
	out := s.Smoothed * s.Envelope
	s.Smoothed = (1-design.RampSmoothing)*s.Smoothed + design.RampSmoothing*target
	s.Envelope *= v.ramp.Decay
	s.Phase += v.ramp.Increment
	if s.Phase > 1 {
		s.Phase = -1
	}
	return out
}

// stepVanDerPol takes one explicit Euler step. The q update sees the new p
// in the nonlinearity and the old p in the restoring term.
func (v *voice) stepVanDerPol() float64 {
	const eps = design.VanDerPolStiffness
	c := &v.vdp
	s := &v.vdpState
	p0, q := s.P, s.Q
	out := q * s.Envelope

	p := p0 + c.Step*(c.Psi*p0+c.Phi*q)
	dq := c.Psi*q + c.Phi*(-p0+eps*(1-p*p)*q)
	s.P = p
	s.Q = q + c.Step*dq
	s.Envelope *= c.Decay
	return out
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
