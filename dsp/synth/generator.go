package synth

import (
	"fmt"

	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/signal"
)

// GeneratorOption configures a [Generator].
type GeneratorOption func(*generatorConfig) error

type generatorConfig struct {
	source  signal.Gaussian
	variant Variant
}

// WithSource sets the Gaussian source noise families draw from. The default
// is a freshly seeded [signal.Normal].
func WithSource(src signal.Gaussian) GeneratorOption {
	return func(cfg *generatorConfig) error {
		if src == nil {
			return fmt.Errorf("synth: gaussian source must not be nil")
		}
		cfg.source = src
		return nil
	}
}

// WithVariant selects the brown and pink noise constants.
func WithVariant(v Variant) GeneratorOption {
	return func(cfg *generatorConfig) error {
		if !v.Valid() {
			return fmt.Errorf("synth: invalid variant: %d", v)
		}
		cfg.variant = v
		return nil
	}
}

// Generator produces one family's samples from the parameters held by its
// [Controls].
//
// Pending control changes are applied by [Generator.Sync], which consumes the
// dirty flags in the order type, params, reset. [Generator.Render] syncs once
// and then produces a whole block; [Generator.Next] never syncs. A Generator
// is owned by a single render goroutine.
type Generator struct {
	controls *Controls
	source   signal.Gaussian
	variant  Variant

	// voices caches every family's state once it has been selected.
	voices [familyCount]*voice
	active *voice

	params Params
	gain   float64
}

// NewGenerator creates a generator driven by controls. Coefficients and state
// are derived lazily on the first Sync.
func NewGenerator(controls *Controls, opts ...GeneratorOption) (*Generator, error) {
	if controls == nil {
		return nil, fmt.Errorf("synth: controls must not be nil")
	}

	cfg := generatorConfig{variant: VariantGenerator}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.source == nil {
		cfg.source = signal.NewNormal()
	}

	return &Generator{
		controls: controls,
		source:   cfg.source,
		variant:  cfg.variant,
	}, nil
}

// Controls returns the parameter holder driving g.
func (g *Generator) Controls() *Controls { return g.controls }

// Variant returns the noise constants g was built with.
func (g *Generator) Variant() Variant { return g.variant }

// Family returns the family of the active voice, or the selected family if
// g has not synced yet.
func (g *Generator) Family() Family {
	if g.active == nil {
		return g.controls.Family()
	}
	return g.active.family
}

// Params returns the parameters the active coefficients were designed from.
func (g *Generator) Params() Params { return g.params }

// Gain returns the linear output gain of the last sync.
func (g *Generator) Gain() float64 { return g.gain }

// Ready reports whether g has an initialized voice.
func (g *Generator) Ready() bool { return g.active != nil && g.active.ready }

// Sync applies pending control changes. A type change selects (and on first
// use allocates) the family's voice and forces a re-design and reset. A
// parameter change re-designs coefficients without touching the running
// state. A reset re-initializes the state from the phase parameter.
//
// Afterwards all three flags are clear.
func (g *Generator) Sync() {
	flags := &g.controls.flags
	typeChanged := flags.typeChanged.Swap(false)
	paramsChanged := flags.paramsChanged.Swap(false) || typeChanged
	resetRequested := flags.resetRequested.Swap(false) || typeChanged

	if typeChanged || g.active == nil {
		g.active = g.voice(g.controls.Family())
		paramsChanged, resetRequested = true, true
	}

	if paramsChanged {
		g.params = g.controls.Snapshot()
		g.params.Family = g.active.family
		g.gain = g.params.GainLinear()
		g.active.design(g.params, g.variant)
	}

	if resetRequested {
		g.active.initialize(g.params)
	}
}

func (g *Generator) voice(f Family) *voice {
	if !f.Valid() {
		f = FamilyTone
	}
	v := g.voices[f]
	if v == nil {
		v = newVoice(f, g.variant)
		g.voices[f] = v
	}
	return v
}

// Next advances the active voice by one sample and returns its raw output,
// before gain and offset. It returns 0 until the first Sync.
func (g *Generator) Next() float64 {
	v := g.active
	if v == nil || !v.ready {
		return 0
	}
	switch v.family {
	case FamilyTone:
		return v.stepTone()
	case FamilySaw:
		return v.stepRamp(v.rampState.Phase)
	case FamilyRect:
		return v.stepRamp(sign(v.rampState.Phase))
	case FamilyVanDerPol:
		return v.stepVanDerPol()
	case FamilyWhite:
		return g.draw()
	case FamilyBrown:
		return v.stepBrown(g.draw())
	case FamilyPink:
		return v.stepPink(g.draw())
	case FamilyViolet:
		return v.stepViolet(g.draw())
	case FamilyGray:
		return v.stepFIR(g.draw())
	default:
		return 0
	}
}

// NextFrame returns the next sample on both channels.
func (g *Generator) NextFrame() core.Frame {
	return core.Mono(g.Next())
}

// Render syncs pending changes and fills dst with raw samples.
func (g *Generator) Render(dst []float64) {
	g.Sync()
	for i := range dst {
		dst[i] = g.Next()
	}
}

func (g *Generator) draw() float64 {
	return g.source.Sample(g.params.Mean, g.params.Std)
}
