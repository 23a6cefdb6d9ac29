package synth

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// Effect adds generator output onto a signal:
//
//	out[i] = in[i] + gain*y[i] + offset
//
// A zero Effect, or one built around a nil generator, passes its input
// through unchanged.
type Effect struct {
	gen     *Generator
	scratch []float64
}

// NewEffect wraps gen as an additive effect.
func NewEffect(gen *Generator) *Effect {
	return &Effect{gen: gen}
}

// NewGeneratorEffect builds controls and a generator with the
// generator-effect defaults and wraps them as an effect.
func NewGeneratorEffect(ctrlOpts []ControlOption, genOpts ...GeneratorOption) (*Effect, error) {
	return newEffect(NewControls, ctrlOpts, append([]GeneratorOption{WithVariant(VariantGenerator)}, genOpts...))
}

// NewNoiseEffect builds controls and a generator with the colored-noise
// defaults and constants and wraps them as an effect.
func NewNoiseEffect(ctrlOpts []ControlOption, genOpts ...GeneratorOption) (*Effect, error) {
	return newEffect(NewNoiseControls, ctrlOpts, append([]GeneratorOption{WithVariant(VariantColored)}, genOpts...))
}

func newEffect(ctor func(...ControlOption) (*Controls, error), ctrlOpts []ControlOption, genOpts []GeneratorOption) (*Effect, error) {
	c, err := ctor(ctrlOpts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGenerator(c, genOpts...)
	if err != nil {
		return nil, err
	}
	return NewEffect(g), nil
}

// Generator returns the wrapped generator, or nil.
func (e *Effect) Generator() *Generator { return e.gen }

// Controls returns the wrapped generator's controls, or nil.
func (e *Effect) Controls() *Controls {
	if e.gen == nil {
		return nil
	}
	return e.gen.controls
}

// Process writes src plus the shaped generator output to dst.
// dst and src may alias; only min(len(dst), len(src)) samples are written.
func (e *Effect) Process(dst, src []float64) {
	n := min(len(dst), len(src))
	if e.gen == nil {
		copy(dst[:n], src[:n])
		return
	}

	e.scratch = core.EnsureLen(e.scratch, n)
	y := e.scratch[:n]
	e.gen.Render(y)

	vecmath.ScaleBlock(y, y, e.gen.gain)
	vecmath.AddBlockInPlace(y, src[:n])
	if off := e.gen.params.Offset; off != 0 {
		for i := range y {
			y[i] += off
		}
	}
	copy(dst[:n], y)
}

// ProcessInPlace adds the generator output onto buf.
func (e *Effect) ProcessInPlace(buf []float64) {
	e.Process(buf, buf)
}

// ProcessFrames is the stereo form of Process; both channels receive the
// same generator sample.
func (e *Effect) ProcessFrames(dst, src []core.Frame) {
	n := min(len(dst), len(src))
	if e.gen == nil {
		copy(dst[:n], src[:n])
		return
	}

	e.gen.Sync()
	gain, off := e.gen.gain, e.gen.params.Offset
	for i := range n {
		y := gain * e.gen.Next()
		dst[i] = core.Frame{L: src[i].L + y + off, R: src[i].R + y + off}
	}
}
