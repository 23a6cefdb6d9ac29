package synth

import "github.com/cwbudde/algo-tonegen/dsp/synth/design"

// stepBrown outputs the integrator before feeding it the draw.
func (v *voice) stepBrown(g float64) float64 {
	out := v.outGain * v.level
	v.level = (1-design.BrownLeak)*v.level + v.weight*g
	return out
}

func (v *voice) stepPink(g float64) float64 {
	if v.feedback {
		return v.stepAR(g)
	}
	return v.stepFIR(g)
}

// stepAR is the recursive pink filter: reg[0] holds the last output and
// reg[1:] the output history, newest first.
func (v *voice) stepAR(g float64) float64 {
	x := v.reg
	out := x[0]
	x[0] = v.weight * g
	for i := len(v.taps); i > 0; i-- {
		x[0] += v.taps[i-1] * x[i]
		x[i] = x[i-1]
	}
	return out
}

// stepFIR weights the previous len(taps) draws. The current draw reaches the
// output on the next sample.
func (v *voice) stepFIR(g float64) float64 {
	return v.shaper.ProcessSample(g)
}

func (v *voice) stepViolet(g float64) float64 {
	out := g - v.level
	v.level = g
	return out
}
