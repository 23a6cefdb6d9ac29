package synth

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// ErrInvalidSampleRate is returned for sample rates outside the host range.
var ErrInvalidSampleRate = errors.New("synth: invalid sample rate")

// atomicFloat is a float64 readable from the render thread while the control
// thread writes it.
type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) Load() float64   { return math.Float64frombits(a.bits.Load()) }
func (a *atomicFloat) Store(v float64) { a.bits.Store(math.Float64bits(v)) }

// dirtyFlags gates recomputation in the renderer. They are consumed in the
// order type, params, reset and never merged: a type change forces the other
// two, a parameter change alone keeps the running phase.
type dirtyFlags struct {
	typeChanged    atomic.Bool
	paramsChanged  atomic.Bool
	resetRequested atomic.Bool
}

func (d *dirtyFlags) raiseAll() {
	d.typeChanged.Store(true)
	d.paramsChanged.Store(true)
	d.resetRequested.Store(true)
}

// Pending reports the three flags without consuming them.
func (d *dirtyFlags) pending() (typeChanged, paramsChanged, resetRequested bool) {
	return d.typeChanged.Load(), d.paramsChanged.Load(), d.resetRequested.Load()
}

// ControlOption configures [Controls] at construction.
type ControlOption func(*controlConfig) error

type controlConfig struct {
	params   Params
	limits   Limits
	fallback Family
}

// WithDefaults replaces the starting parameter set.
func WithDefaults(p Params) ControlOption {
	return func(cfg *controlConfig) error {
		if !p.Family.Valid() {
			return fmt.Errorf("synth: invalid family: %d", p.Family)
		}
		cfg.params = p
		cfg.fallback = p.Family
		return nil
	}
}

// WithSampleRate sets the starting sample rate.
func WithSampleRate(sampleRate float64) ControlOption {
	return func(cfg *controlConfig) error {
		if !validSampleRate(sampleRate) {
			return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
		}
		cfg.params.SampleRate = sampleRate
		return nil
	}
}

// WithFamily sets the starting family.
func WithFamily(f Family) ControlOption {
	return func(cfg *controlConfig) error {
		if !f.Valid() {
			return fmt.Errorf("synth: invalid family: %d", f)
		}
		cfg.params.Family = f
		return nil
	}
}

// WithFallbackFamily sets the family unknown names resolve to.
func WithFallbackFamily(f Family) ControlOption {
	return func(cfg *controlConfig) error {
		if !f.Valid() {
			return fmt.Errorf("synth: invalid fallback family: %d", f)
		}
		cfg.fallback = f
		return nil
	}
}

// WithLimits sets the ranges setters clamp to.
func WithLimits(l Limits) ControlOption {
	return func(cfg *controlConfig) error {
		if l.PhaseMin > l.PhaseMax || l.GainMinDB > l.GainMaxDB || l.OffsetMin > l.OffsetMax ||
			l.MeanMin > l.MeanMax || l.StdMin > l.StdMax || l.StdMin < 0 {
			return fmt.Errorf("synth: inconsistent limits: %+v", l)
		}
		cfg.limits = l
		return nil
	}
}

// Controls holds the parameters of one generator together with the three
// dirty flags the renderer consumes.
//
// Setters are lock-free: they store the clamped value and raise flags. They
// never recompute coefficients and have no access to recursion state, so a
// control thread cannot tear a render in progress. Out-of-range values are
// clamped, never rejected.
type Controls struct {
	sampleRate atomicFloat
	frequency  atomicFloat
	damping    atomicFloat
	phase      atomicFloat
	gainDB     atomicFloat
	offset     atomicFloat
	mean       atomicFloat
	std        atomicFloat
	family     atomic.Int32

	limits   Limits
	fallback Family

	flags dirtyFlags
}

// NewControls creates controls with the generator-effect defaults and the
// given overrides. All three dirty flags start raised so the first render
// designs and initializes the generator.
func NewControls(opts ...ControlOption) (*Controls, error) {
	cfg := controlConfig{
		params:   GeneratorDefaults(),
		limits:   DefaultLimits(),
		fallback: FamilyTone,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if !validSampleRate(cfg.params.SampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, cfg.params.SampleRate)
	}

	c := &Controls{limits: cfg.limits, fallback: cfg.fallback}
	p := c.Clamp(cfg.params)
	c.sampleRate.Store(p.SampleRate)
	c.frequency.Store(p.Frequency)
	c.damping.Store(p.Damping)
	c.phase.Store(p.Phase)
	c.gainDB.Store(p.GainDB)
	c.offset.Store(p.Offset)
	c.mean.Store(p.Mean)
	c.std.Store(p.Std)
	c.family.Store(int32(p.Family))
	c.flags.raiseAll()
	return c, nil
}

// NewNoiseControls creates controls with the colored-noise defaults.
func NewNoiseControls(opts ...ControlOption) (*Controls, error) {
	return NewControls(append([]ControlOption{WithDefaults(NoiseDefaults())}, opts...)...)
}

// NewStreamControls creates controls with the tone-stream defaults and limits.
func NewStreamControls(opts ...ControlOption) (*Controls, error) {
	return NewControls(append([]ControlOption{WithDefaults(StreamDefaults()), WithLimits(StreamLimits())}, opts...)...)
}

// SetSampleRate updates the rate frequency and damping are discretized at.
// Invalid rates are ignored. The stored frequency is re-clamped to the new
// Nyquist limit and the generator is re-designed and re-initialized.
func (c *Controls) SetSampleRate(sampleRate float64) {
	if !validSampleRate(sampleRate) {
		return
	}
	c.sampleRate.Store(sampleRate)
	c.frequency.Store(core.ClampFrequency(c.frequency.Load(), sampleRate))
	c.flags.paramsChanged.Store(true)
	c.flags.resetRequested.Store(true)
}

// SetFrequency sets the oscillator frequency, clamped to [0, fs/2].
func (c *Controls) SetFrequency(freqHz float64) {
	c.frequency.Store(core.ClampFrequency(freqHz, c.sampleRate.Load()))
	c.flags.paramsChanged.Store(true)
}

// SetDamping sets the envelope decay rate, clamped to
// [0, core.MaxDampingPerSample*fs].
func (c *Controls) SetDamping(damping float64) {
	c.damping.Store(core.ClampDamping(damping, c.sampleRate.Load()))
	c.flags.paramsChanged.Store(true)
}

// SetPhase sets the starting phase in degrees and requests a reset so the
// next render starts on it.
func (c *Controls) SetPhase(deg float64) {
	c.phase.Store(clampLimit(deg, c.limits.PhaseMin, c.limits.PhaseMax))
	c.flags.paramsChanged.Store(true)
	c.flags.resetRequested.Store(true)
}

// SetGainDB sets the output gain in dB.
func (c *Controls) SetGainDB(db float64) {
	c.gainDB.Store(clampLimit(db, c.limits.GainMinDB, c.limits.GainMaxDB))
	c.flags.paramsChanged.Store(true)
}

// SetOffset sets the additive output bias.
func (c *Controls) SetOffset(offset float64) {
	c.offset.Store(clampLimit(offset, c.limits.OffsetMin, c.limits.OffsetMax))
	c.flags.paramsChanged.Store(true)
}

// SetMean sets the mean of the Gaussian draws.
func (c *Controls) SetMean(mean float64) {
	c.mean.Store(clampLimit(mean, c.limits.MeanMin, c.limits.MeanMax))
	c.flags.paramsChanged.Store(true)
}

// SetStd sets the standard deviation of the Gaussian draws.
func (c *Controls) SetStd(std float64) {
	c.std.Store(clampLimit(std, c.limits.StdMin, c.limits.StdMax))
	c.flags.paramsChanged.Store(true)
}

// SetFamily selects the active family. Invalid tags select the fallback.
func (c *Controls) SetFamily(f Family) {
	if !f.Valid() {
		f = c.fallback
	}
	c.family.Store(int32(f))
	c.flags.typeChanged.Store(true)
}

// SetFamilyName selects the active family by name; see [ParseFamily] for the
// accepted spellings. Unknown names select the fallback family. It reports
// whether name was recognised.
func (c *Controls) SetFamilyName(name string) bool {
	f, ok := ParseFamily(name, c.fallback)
	c.SetFamily(f)
	return ok
}

// Reset requests a phase-continuous re-initialization on the next render.
func (c *Controls) Reset() {
	c.flags.resetRequested.Store(true)
}

// Invalidate requests a full re-design and re-initialization on the next render.
func (c *Controls) Invalidate() {
	c.flags.paramsChanged.Store(true)
	c.flags.resetRequested.Store(true)
}

// Pending reports which dirty flags are raised, in consumption order.
func (c *Controls) Pending() (typeChanged, paramsChanged, resetRequested bool) {
	return c.flags.pending()
}

// SampleRate returns the sample rate in Hz.
func (c *Controls) SampleRate() float64 { return c.sampleRate.Load() }

// Frequency returns the clamped frequency in Hz.
func (c *Controls) Frequency() float64 { return c.frequency.Load() }

// Damping returns the envelope decay rate.
func (c *Controls) Damping() float64 { return c.damping.Load() }

// Phase returns the starting phase in degrees.
func (c *Controls) Phase() float64 { return c.phase.Load() }

// GainDB returns the output gain in dB.
func (c *Controls) GainDB() float64 { return c.gainDB.Load() }

// GainLinear returns the output gain as an amplitude multiplier.
func (c *Controls) GainLinear() float64 { return core.DBToLinear(c.gainDB.Load()) }

// Offset returns the additive output bias.
func (c *Controls) Offset() float64 { return c.offset.Load() }

// Mean returns the Gaussian mean.
func (c *Controls) Mean() float64 { return c.mean.Load() }

// Std returns the Gaussian standard deviation.
func (c *Controls) Std() float64 { return c.std.Load() }

// Family returns the selected family.
func (c *Controls) Family() Family { return Family(c.family.Load()) }

// Snapshot returns the current parameter values.
func (c *Controls) Snapshot() Params {
	fs := c.sampleRate.Load()
	return Params{
		SampleRate: fs,
		Frequency:  core.ClampFrequency(c.frequency.Load(), fs),
		Damping:    core.ClampDamping(c.damping.Load(), fs),
		Phase:      c.phase.Load(),
		GainDB:     c.gainDB.Load(),
		Offset:     c.offset.Load(),
		Mean:       c.mean.Load(),
		Std:        c.std.Load(),
		Family:     Family(c.family.Load()),
	}
}

// Clamp returns p limited the way the setters limit each value. The sample
// rate of p is used when valid, the current one otherwise. Hosts compare the
// result with the current values to skip setters that would change nothing.
func (c *Controls) Clamp(p Params) Params {
	fs := p.SampleRate
	if !validSampleRate(fs) {
		fs = c.sampleRate.Load()
	}
	f := p.Family
	if !f.Valid() {
		f = c.fallback
	}
	l := c.limits
	return Params{
		SampleRate: fs,
		Frequency:  core.ClampFrequency(p.Frequency, fs),
		Damping:    core.ClampDamping(p.Damping, fs),
		Phase:      clampLimit(p.Phase, l.PhaseMin, l.PhaseMax),
		GainDB:     clampLimit(p.GainDB, l.GainMinDB, l.GainMaxDB),
		Offset:     clampLimit(p.Offset, l.OffsetMin, l.OffsetMax),
		Mean:       clampLimit(p.Mean, l.MeanMin, l.MeanMax),
		Std:        clampLimit(p.Std, l.StdMin, l.StdMax),
		Family:     f,
	}
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate >= core.MinSampleRate && sampleRate <= core.MaxSampleRate
}

// clampLimit is core.Clamp with NaN mapped to the lower bound.
func clampLimit(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return core.Clamp(v, lo, hi)
}
