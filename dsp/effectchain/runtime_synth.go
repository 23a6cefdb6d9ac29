package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/signal"
	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

// applyControls copies the parameters present in p onto c. Missing keys keep
// their current value. The sample rate goes first so frequency is clamped
// against the new Nyquist limit. Values that clamp to what c already holds are
// not written, so reloading an unchanged chain leaves running generators alone.
func applyControls(c *synth.Controls, ctx Context, p Params) {
	if ctx.SampleRate > 0 && ctx.SampleRate != c.SampleRate() {
		c.SetSampleRate(ctx.SampleRate)
	}

	cur := c.Snapshot()
	want := cur

	if name, ok := p.Str["type"]; ok {
		// Unknown names map to an invalid tag, which Clamp resolves to the
		// fallback family.
		want.Family, _ = synth.ParseFamily(name, -1)
	}

	fields := []struct {
		key string
		dst *float64
	}{
		{"frequency", &want.Frequency},
		{"damping", &want.Damping},
		{"phase", &want.Phase},
		{"gain", &want.GainDB},
		{"offset", &want.Offset},
		{"mean", &want.Mean},
		{"std", &want.Std},
	}
	for _, f := range fields {
		if v, ok := p.LookupNum(f.key); ok {
			*f.dst = v
		}
	}

	want = c.Clamp(want)

	if want.Family != cur.Family {
		c.SetFamily(want.Family)
	}

	setters := []struct {
		got, want float64
		set       func(float64)
	}{
		{cur.Frequency, want.Frequency, c.SetFrequency},
		{cur.Damping, want.Damping, c.SetDamping},
		{cur.Phase, want.Phase, c.SetPhase},
		{cur.GainDB, want.GainDB, c.SetGainDB},
		{cur.Offset, want.Offset, c.SetOffset},
		{cur.Mean, want.Mean, c.SetMean},
		{cur.Std, want.Std, c.SetStd},
	}
	for _, s := range setters {
		if s.want != s.got {
			s.set(s.want)
		}
	}
}

func controlOptions(ctx Context) []synth.ControlOption {
	if ctx.SampleRate < core.MinSampleRate || ctx.SampleRate > core.MaxSampleRate {
		return nil
	}

	return []synth.ControlOption{synth.WithSampleRate(ctx.SampleRate)}
}

// generatorRuntime adds a generator onto the block. It serves both the
// "generator" and the "noise" node types, which differ in defaults and noise
// constants.
type generatorRuntime struct {
	fx      *synth.Effect
	variant synth.Variant
	seed    uint64
	seeded  bool
}

func newGeneratorRuntime(ctx Context, variant synth.Variant) (*generatorRuntime, error) {
	ctor := synth.NewGeneratorEffect
	if variant == synth.VariantColored {
		ctor = synth.NewNoiseEffect
	}

	fx, err := ctor(controlOptions(ctx))
	if err != nil {
		return nil, err
	}

	return &generatorRuntime{fx: fx, variant: variant}, nil
}

func (r *generatorRuntime) Configure(ctx Context, p Params) error {
	if v, ok := p.LookupNum("seed"); ok {
		if v < 0 {
			return fmt.Errorf("seed must be non-negative: %v", v)
		}

		seed := uint64(v)
		if !r.seeded || seed != r.seed {
			err := r.reseed(seed)
			if err != nil {
				return err
			}
		}
	}

	applyControls(r.fx.Controls(), ctx, p)

	return nil
}

// reseed swaps in a generator drawing from a source seeded with seed. The
// controls are shared, so parameters carry over; the new generator starts
// from a fresh state.
func (r *generatorRuntime) reseed(seed uint64) error {
	gen, err := synth.NewGenerator(r.fx.Controls(),
		synth.WithVariant(r.variant),
		synth.WithSource(signal.NewNormal(signal.WithSeed(seed))),
	)
	if err != nil {
		return err
	}

	r.fx = synth.NewEffect(gen)
	r.seed, r.seeded = seed, true

	return nil
}

func (r *generatorRuntime) Process(block []float64) {
	r.fx.ProcessInPlace(block)
}

func (r *generatorRuntime) Reset() {
	r.fx.Controls().Reset()
}

// Effect exposes the wrapped effect for inspection.
func (r *generatorRuntime) Effect() *synth.Effect {
	return r.fx
}

// toneStreamRuntime replaces the block with stream output. The "playing"
// parameter starts and stops the stream.
type toneStreamRuntime struct {
	stream *synth.Stream
}

func newToneStreamRuntime(ctx Context) (*toneStreamRuntime, error) {
	s, err := synth.NewStream(controlOptions(ctx))
	if err != nil {
		return nil, err
	}

	return &toneStreamRuntime{stream: s}, nil
}

func (r *toneStreamRuntime) Configure(ctx Context, p Params) error {
	applyControls(r.stream.Controls(), ctx, p)

	if v, ok := p.LookupNum("bufferLength"); ok {
		err := r.stream.SetBufferLength(v)
		if err != nil {
			return err
		}
	}

	playing := p.GetBool("playing", r.stream.IsPlaying())
	switch {
	case playing && !r.stream.IsPlaying():
		r.stream.Start(0)
	case !playing && r.stream.IsPlaying():
		r.stream.Stop()
	}

	return nil
}

func (r *toneStreamRuntime) Process(block []float64) {
	r.stream.MixMono(block)
}

func (r *toneStreamRuntime) Reset() {
	r.stream.Controls().Reset()
}

// Stream exposes the wrapped stream for inspection.
func (r *toneStreamRuntime) Stream() *synth.Stream {
	return r.stream
}
