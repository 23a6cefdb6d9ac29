package signal

import (
	"math/rand/v2"
)

// Gaussian produces independent normally distributed samples.
//
// Implementations are owned by a single renderer and need not be safe for
// concurrent use.
type Gaussian interface {
	Sample(mean, std float64) float64
}

// Normal draws from a PCG-backed normal distribution.
type Normal struct {
	rng  *rand.Rand
	seed uint64
}

// Option configures a Normal source.
type Option func(*Normal)

// WithSeed sets a deterministic seed.
func WithSeed(seed uint64) Option {
	return func(n *Normal) {
		n.seed = seed
		n.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRNG uses rng as the bit source.
func WithRNG(rng *rand.Rand) Option {
	return func(n *Normal) {
		if rng != nil {
			n.rng = rng
		}
	}
}

// NewNormal creates a normal source. Without options it is seeded randomly.
func NewNormal(opts ...Option) *Normal {
	n := &Normal{}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	if n.rng == nil {
		n.seed = rand.Uint64()
		n.rng = rand.New(rand.NewPCG(n.seed, rand.Uint64()))
	}
	return n
}

// Sample returns one draw from N(mean, std²).
func (n *Normal) Sample(mean, std float64) float64 {
	return mean + std*n.rng.NormFloat64()
}

// Seed returns the seed passed via WithSeed, or the random seed chosen at
// construction.
func (n *Normal) Seed() uint64 {
	return n.seed
}

// Sequence replays unit draws from a fixed slice, wrapping at the end.
// Each replayed value z is mapped to mean + std*z.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a replay source over values. The slice is copied.
func NewSequence(values []float64) *Sequence {
	v := make([]float64, len(values))
	copy(v, values)
	return &Sequence{values: v}
}

// Sample returns the next replayed draw scaled to N(mean, std²).
// An empty sequence always yields mean.
func (s *Sequence) Sample(mean, std float64) float64 {
	if len(s.values) == 0 {
		return mean
	}
	z := s.values[s.pos]
	s.pos++
	if s.pos == len(s.values) {
		s.pos = 0
	}
	return mean + std*z
}

// Rewind restarts the sequence from its first value.
func (s *Sequence) Rewind() {
	s.pos = 0
}

// Len returns the number of values in one cycle.
func (s *Sequence) Len() int {
	return len(s.values)
}

// Scaled multiplies every draw of an inner source by Gain.
type Scaled struct {
	Source Gaussian
	Gain   float64
}

// Sample returns Gain times the inner draw.
func (s Scaled) Sample(mean, std float64) float64 {
	return s.Gain * s.Source.Sample(mean, std)
}

// Draw fills dst with unit normal draws from src and returns dst.
func Draw(src Gaussian, dst []float64) []float64 {
	for i := range dst {
		dst[i] = src.Sample(0, 1)
	}
	return dst
}
