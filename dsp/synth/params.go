package synth

import "github.com/cwbudde/algo-tonegen/dsp/core"

// Params is a plain snapshot of generator parameters.
type Params struct {
	SampleRate float64 // Hz
	Frequency  float64 // Hz, at most SampleRate/2
	Damping    float64 // envelope decay rate, 1/s
	Phase      float64 // degrees, applied on reset only
	GainDB     float64
	Offset     float64
	Mean       float64
	Std        float64
	Family     Family
}

// GainLinear returns GainDB as an amplitude multiplier.
func (p Params) GainLinear() float64 {
	return core.DBToLinear(p.GainDB)
}

// GeneratorDefaults are the defaults of the generator effect.
func GeneratorDefaults() Params {
	return Params{
		SampleRate: core.DefaultProcessorConfig().SampleRate,
		Frequency:  400,
		Std:        0.1,
		Family:     FamilyTone,
	}
}

// NoiseDefaults are the defaults of the colored-noise effect.
func NoiseDefaults() Params {
	return Params{
		SampleRate: core.DefaultProcessorConfig().SampleRate,
		Frequency:  400,
		Std:        0.25,
		Family:     FamilyWhite,
	}
}

// StreamDefaults are the defaults of the standalone tone stream.
func StreamDefaults() Params {
	return Params{
		SampleRate: 44100,
		Frequency:  400,
		Std:        0.1,
		Family:     FamilyTone,
	}
}

// Limits bound the values accepted by [Controls] setters.
type Limits struct {
	PhaseMin, PhaseMax   float64
	GainMinDB, GainMaxDB float64
	OffsetMin, OffsetMax float64
	MeanMin, MeanMax     float64
	StdMin, StdMax       float64
}

// DefaultLimits returns the ranges exposed by the generator effect.
func DefaultLimits() Limits {
	return Limits{
		PhaseMin: 0, PhaseMax: 180,
		GainMinDB: -80, GainMaxDB: 24,
		OffsetMin: -1, OffsetMax: 1,
		MeanMin: -0.5, MeanMax: 0.5,
		StdMin: 0, StdMax: 0.5,
	}
}

// StreamLimits returns the ranges exposed by the tone stream, which never
// amplifies.
func StreamLimits() Limits {
	l := DefaultLimits()
	l.GainMaxDB = 0
	return l
}
