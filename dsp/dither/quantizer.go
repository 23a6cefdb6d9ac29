package dither

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-tonegen/dsp/filter/fir"
	"github.com/cwbudde/algo-tonegen/dsp/signal"
)

const (
	defaultBitDepth  = 16
	defaultAmplitude = 1.0
	minBitDepth      = 2
	maxBitDepth      = 32
)

type config struct {
	bitDepth  int
	kind      Kind
	amplitude float64
	shaping   Shaping
	rng       *rand.Rand
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2–32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithKind sets the dither distribution (default [KindTriangular]).
func WithKind(k Kind) Option {
	return func(cfg *config) error {
		if !k.Valid() {
			return fmt.Errorf("dither: invalid kind: %d", k)
		}
		cfg.kind = k
		return nil
	}
}

// WithAmplitude sets the dither amplitude in LSB (default 1).
func WithAmplitude(lsb float64) Option {
	return func(cfg *config) error {
		if lsb < 0 || math.IsNaN(lsb) || math.IsInf(lsb, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", lsb)
		}
		cfg.amplitude = lsb
		return nil
	}
}

// WithShaping sets the error-feedback filter (default [ShapingNone]).
func WithShaping(s Shaping) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("dither: invalid shaping: %d", s)
		}
		cfg.shaping = s
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.rng = rand.New(rand.NewPCG(seed, ^seed))
		return nil
	}
}

// Quantizer maps float samples to integers of a fixed bit depth. It keeps
// error history and is not safe for concurrent use.
type Quantizer struct {
	bitDepth  int
	kind      Kind
	amplitude float64
	shaper    *fir.Filter // filters rounding errors, nil without shaping
	feedback  float64     // shaper output subtracted from the next sample

	rng   *rand.Rand
	gauss signal.Gaussian

	scale  float64
	lo, hi int
}

// NewQuantizer creates a 16-bit TPDF quantizer without noise shaping unless
// options say otherwise.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := config{
		bitDepth:  defaultBitDepth,
		kind:      KindTriangular,
		amplitude: defaultAmplitude,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q := &Quantizer{
		bitDepth:  cfg.bitDepth,
		kind:      cfg.kind,
		amplitude: cfg.amplitude,
		rng:       cfg.rng,
		gauss:     signal.NewNormal(signal.WithRNG(cfg.rng)),
	}
	if taps := cfg.shaping.Taps(); len(taps) > 0 {
		q.shaper = fir.New(taps)
	}
	full := math.Exp2(float64(cfg.bitDepth - 1))
	q.scale = full - 1
	q.lo = -int(full)
	q.hi = int(full) - 1
	return q, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Kind returns the dither distribution.
func (q *Quantizer) Kind() Kind { return q.kind }

// Quantize converts one sample. NaN is treated as silence.
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}

	shaped := x*q.scale - q.feedback
	v := math.Round(shaped + q.noise())

	if q.shaper != nil {
		q.feedback = q.shaper.ProcessSample(v - shaped)
	}

	return int(math.Max(float64(q.lo), math.Min(float64(q.hi), v)))
}

// QuantizeBlock converts src into dst, growing dst as needed, and returns it.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
	return dst
}

// Reset clears the error history.
func (q *Quantizer) Reset() {
	if q.shaper != nil {
		q.shaper.Reset()
	}
	q.feedback = 0
}

func (q *Quantizer) noise() float64 {
	switch q.kind {
	case KindRectangular:
		return q.amplitude * (2*q.rng.Float64() - 1)
	case KindTriangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	case KindGaussian:
		return q.gauss.Sample(0, q.amplitude)
	default:
		return 0
	}
}
