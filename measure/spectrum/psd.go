package spectrum

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// ErrShortSignal is returned when a signal is shorter than one segment.
var ErrShortSignal = errors.New("spectrum: signal shorter than one segment")

const (
	defaultSegmentSize = 4096
	defaultOverlap     = 0.5
)

// Option configures an [Analyzer].
type Option func(*config) error

type config struct {
	sampleRate  float64
	segmentSize int
	overlap     float64
	window      Window
}

// WithSampleRate sets the sample rate bins are labelled with.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if sampleRate < core.MinSampleRate || sampleRate > core.MaxSampleRate {
			return fmt.Errorf("spectrum: sample rate out of range: %f", sampleRate)
		}
		cfg.sampleRate = sampleRate
		return nil
	}
}

// WithSegmentSize sets the FFT length. It must be a power of two >= 16.
func WithSegmentSize(n int) Option {
	return func(cfg *config) error {
		if n < 16 || bits.OnesCount(uint(n)) != 1 {
			return fmt.Errorf("spectrum: segment size must be a power of two >= 16: %d", n)
		}
		cfg.segmentSize = n
		return nil
	}
}

// WithOverlap sets the fraction of a segment shared with the next one.
func WithOverlap(fraction float64) Option {
	return func(cfg *config) error {
		if fraction < 0 || fraction > 0.9 {
			return fmt.Errorf("spectrum: overlap must be in [0, 0.9]: %f", fraction)
		}
		cfg.overlap = fraction
		return nil
	}
}

// WithWindow sets the segment taper.
func WithWindow(w Window) Option {
	return func(cfg *config) error {
		if w < WindowHann || w > WindowBlackman {
			return fmt.Errorf("spectrum: unknown window: %d", w)
		}
		cfg.window = w
		return nil
	}
}

type forwardPlan interface {
	Forward(dst, src []complex128) error
}

// Analyzer estimates one-sided power spectral density with Welch's method:
// the signal is cut into overlapping windowed segments whose periodograms are
// averaged. An Analyzer reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	cfg     config
	hop     int
	win     []float64
	winPow  float64
	plan    forwardPlan
	seg     []float64
	in, out []complex128
	re, im  []float64
	pow     []float64
}

// NewAnalyzer creates an analyzer. Defaults: 48 kHz, 4096-point Hann
// segments with 50% overlap.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := config{
		sampleRate:  48000,
		segmentSize: defaultSegmentSize,
		overlap:     defaultOverlap,
		window:      WindowHann,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n := cfg.segmentSize
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win := cfg.window.coefficients(n)
	winPow := vecmath.DotProduct(win, win)

	hop := max(1, int(float64(n)*(1-cfg.overlap)))

	return &Analyzer{
		cfg:    cfg,
		hop:    hop,
		win:    win,
		winPow: winPow,
		plan:   plan,
		seg:    make([]float64, n),
		in:     make([]complex128, n),
		out:    make([]complex128, n),
		re:     make([]float64, n/2+1),
		im:     make([]float64, n/2+1),
		pow:    make([]float64, n/2+1),
	}, nil
}

// SampleRate returns the configured sample rate.
func (a *Analyzer) SampleRate() float64 { return a.cfg.sampleRate }

// SegmentSize returns the FFT length.
func (a *Analyzer) SegmentSize() int { return a.cfg.segmentSize }

// BinHz returns the bin spacing in Hz.
func (a *Analyzer) BinHz() float64 { return a.cfg.sampleRate / float64(a.cfg.segmentSize) }

// Segments returns how many segments a signal of length n yields.
func (a *Analyzer) Segments(n int) int {
	if n < a.cfg.segmentSize {
		return 0
	}
	return 1 + (n-a.cfg.segmentSize)/a.hop
}

// PSD returns the one-sided power spectral density of signal in units^2/Hz
// for bins 0..N/2. Integrating it over frequency gives the signal's mean
// power.
func (a *Analyzer) PSD(signal []float64) ([]float64, error) {
	segments := a.Segments(len(signal))
	if segments == 0 {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortSignal, len(signal), a.cfg.segmentSize)
	}

	n := a.cfg.segmentSize
	bins := n/2 + 1
	acc := make([]float64, bins)

	for s := range segments {
		start := s * a.hop
		vecmath.MulBlock(a.seg, signal[start:start+n], a.win)
		for i, v := range a.seg {
			a.in[i] = complex(v, 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, fmt.Errorf("spectrum: fft: %w", err)
		}

		for k := range bins {
			a.re[k] = real(a.out[k])
			a.im[k] = imag(a.out[k])
		}
		vecmath.Power(a.pow, a.re, a.im)
		vecmath.AddBlockInPlace(acc, a.pow)
	}

	scale := 1 / (float64(segments) * a.winPow * a.cfg.sampleRate)
	vecmath.ScaleBlock(acc, acc, scale)
	// Fold negative frequencies onto the positive side; DC and Nyquist have
	// no mirror.
	for k := 1; k < bins-1; k++ {
		acc[k] *= 2
	}

	return acc, nil
}

// Frequencies returns the centre frequency of each PSD bin.
func (a *Analyzer) Frequencies() []float64 {
	bins := a.cfg.segmentSize/2 + 1
	out := make([]float64, bins)
	df := a.BinHz()
	for k := range out {
		out[k] = float64(k) * df
	}
	return out
}
