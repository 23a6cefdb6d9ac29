package main

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/dither"
	"github.com/cwbudde/algo-tonegen/dsp/effectchain"
	"github.com/cwbudde/algo-tonegen/dsp/signal"
	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

// renderBlock is the number of samples produced per Mix call.
const renderBlock = 1024

type renderConfig struct {
	sampleRate float64
	duration   float64
	frequency  float64
	damping    float64
	phase      float64
	gainDB     float64
	mean       float64
	std        float64
	seed       uint64
	variant    synth.Variant
	dither     dither.Kind
}

func defaultRenderConfig() renderConfig {
	return renderConfig{
		sampleRate: 48000,
		duration:   2,
		frequency:  1000,
		gainDB:     -6,
		std:        0.25,
		variant:    synth.VariantColored,
		dither:     dither.KindTriangular,
	}
}

func (c renderConfig) frames() (int, error) {
	if c.duration <= 0 || math.IsNaN(c.duration) || math.IsInf(c.duration, 0) {
		return 0, fmt.Errorf("invalid duration: %g", c.duration)
	}
	return int(math.Round(c.duration * c.sampleRate)), nil
}

func (c renderConfig) params(f synth.Family) synth.Params {
	return synth.Params{
		SampleRate: c.sampleRate,
		Frequency:  c.frequency,
		Damping:    c.damping,
		Phase:      c.phase,
		GainDB:     c.gainDB,
		Mean:       c.mean,
		Std:        c.std,
		Family:     f,
	}
}

func (c renderConfig) source() signal.Gaussian {
	if c.seed == 0 {
		return signal.NewNormal()
	}
	return signal.NewNormal(signal.WithSeed(c.seed))
}

// newStream builds a started stream for family f.
func newStream(cfg renderConfig, f synth.Family) (*synth.Stream, error) {
	s, err := synth.NewStream(
		[]synth.ControlOption{synth.WithDefaults(cfg.params(f))},
		synth.WithSource(cfg.source()),
		synth.WithVariant(cfg.variant),
	)
	if err != nil {
		return nil, err
	}
	s.Start(0)
	return s, nil
}

// renderFamily renders cfg.duration seconds of family f through a stream.
func renderFamily(ctx context.Context, cfg renderConfig, f synth.Family) ([]float64, error) {
	n, err := cfg.frames()
	if err != nil {
		return nil, err
	}
	s, err := newStream(cfg, f)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := 0; i < n; i += renderBlock {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.MixMono(out[i:min(i+renderBlock, n)])
	}
	s.Stop()
	return out, nil
}

// renderChain runs an effect chain over silence. Generator nodes add their
// signal onto the block, so the result is the sum of all nodes.
func renderChain(cfg renderConfig, raw string) ([]float64, error) {
	n, err := cfg.frames()
	if err != nil {
		return nil, err
	}

	chain := effectchain.New(effectchain.Context{SampleRate: cfg.sampleRate}, effectchain.DefaultRegistry())
	chain.Strict = true
	if err := chain.LoadJSON(raw); err != nil {
		return nil, err
	}
	if chain.Len() == 0 {
		return nil, fmt.Errorf("chain has no nodes")
	}

	out := make([]float64, n)
	for i := 0; i < n; i += renderBlock {
		chain.Process(out[i:min(i+renderBlock, n)])
	}
	return out, nil
}
