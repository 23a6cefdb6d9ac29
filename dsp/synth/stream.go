package synth

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

const (
	// DefaultBufferLength is the default stream buffer length in seconds.
	DefaultBufferLength = 0.5
	// MinBufferLength and MaxBufferLength bound SetBufferLength.
	MinBufferLength = 0.01
	MaxBufferLength = 10.0

	streamName = "UserFeed"
)

// Stream is a generator used as a standalone audio source:
//
//	out[i] = gain*y[i]
//
// with a playback shim around it. While stopped, Mix emits silence and the
// playback position does not advance. Seeking is not possible.
type Stream struct {
	gen *Generator

	active       atomic.Bool
	mixed        atomicFloat
	bufferLength atomicFloat
}

// NewStream creates a stopped stream with the tone-stream defaults.
func NewStream(ctrlOpts []ControlOption, genOpts ...GeneratorOption) (*Stream, error) {
	c, err := NewStreamControls(ctrlOpts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGenerator(c, genOpts...)
	if err != nil {
		return nil, err
	}
	return NewStreamFor(g), nil
}

// NewStreamFor wraps an existing generator as a stopped stream.
func NewStreamFor(gen *Generator) *Stream {
	s := &Stream{gen: gen}
	s.bufferLength.Store(DefaultBufferLength)
	return s
}

// Generator returns the wrapped generator.
func (s *Stream) Generator() *Generator { return s.gen }

// Controls returns the wrapped generator's controls.
func (s *Stream) Controls() *Controls { return s.gen.controls }

// Start begins playback. Starting from a fully stopped state, one whose
// position is still zero, re-derives the coefficients and resets the
// recursion state. The position restarts at zero either way; the start
// position is ignored because the stream cannot seek.
func (s *Stream) Start(_ float64) {
	if s.mixed.Load() == 0 {
		s.gen.controls.Invalidate()
	}
	s.active.Store(true)
	s.mixed.Store(0)
}

// Stop halts playback. The position is kept.
func (s *Stream) Stop() {
	s.active.Store(false)
}

// IsPlaying reports whether the stream is active.
func (s *Stream) IsPlaying() bool { return s.active.Load() }

// PlaybackPosition returns the elapsed time in seconds since Start.
func (s *Stream) PlaybackPosition() float64 { return s.mixed.Load() }

// Seek is a no-op.
func (s *Stream) Seek(float64) {}

// LoopCount is always 0.
func (s *Stream) LoopCount() int { return 0 }

// SampleRate returns the stream's mix rate in Hz.
func (s *Stream) SampleRate() float64 { return s.gen.controls.SampleRate() }

// SetSampleRate changes the mix rate. Coefficients and state are re-derived
// on the next Mix.
func (s *Stream) SetSampleRate(sampleRate float64) { s.gen.controls.SetSampleRate(sampleRate) }

// BufferLength returns the buffer length hint in seconds.
func (s *Stream) BufferLength() float64 { return s.bufferLength.Load() }

// SetBufferLength sets the buffer length hint, clamped to
// [MinBufferLength, MaxBufferLength].
func (s *Stream) SetBufferLength(seconds float64) error {
	if math.IsNaN(seconds) {
		return fmt.Errorf("synth: invalid buffer length: %f", seconds)
	}
	s.bufferLength.Store(core.Clamp(seconds, MinBufferLength, MaxBufferLength))
	return nil
}

// Length reports the stream length, which is its buffer length.
func (s *Stream) Length() float64 { return s.BufferLength() }

// Name returns the stream name reported to hosts.
func (s *Stream) Name() string { return streamName }

// IsMonophonic reports that a stream instance plays one voice.
func (s *Stream) IsMonophonic() bool { return true }

// Mix fills buf with generator frames and returns the number of frames
// produced. When stopped it zeroes buf and returns 0.
func (s *Stream) Mix(buf []core.Frame) int {
	if !s.active.Load() {
		core.ZeroFrames(buf)
		return 0
	}

	g := s.gen
	g.Sync()
	for i := range buf {
		buf[i] = core.Mono(g.gain * g.Next())
	}
	s.advance(len(buf))
	return len(buf)
}

// MixMono is the single-channel form of Mix.
func (s *Stream) MixMono(buf []float64) int {
	if !s.active.Load() {
		core.Zero(buf)
		return 0
	}

	g := s.gen
	g.Sync()
	for i := range buf {
		buf[i] = g.gain * g.Next()
	}
	s.advance(len(buf))
	return len(buf)
}

func (s *Stream) advance(frames int) {
	if fs := s.gen.params.SampleRate; fs > 0 {
		s.mixed.Store(s.mixed.Load() + float64(frames)/fs)
	}
}
