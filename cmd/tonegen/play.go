//go:build !headless

package main

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

// streamReader adapts a stream to the io.Reader oto pulls float32 samples from.
type streamReader struct {
	stream *synth.Stream
	buf    []float64
}

func (r *streamReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(r.buf) < n {
		r.buf = make([]float64, n)
	}
	buf := r.buf[:n]
	r.stream.MixMono(buf)
	for i, x := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(float32(x)))
	}
	return 4 * n, nil
}

// playLive plays family f until the duration has elapsed or ctx is done.
func playLive(ctx context.Context, cfg renderConfig, f synth.Family) error {
	s, err := newStream(cfg, f)
	if err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.sampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(s.BufferLength() * float64(time.Second)),
	})
	if err != nil {
		return err
	}
	<-ready

	player := otoCtx.NewPlayer(&streamReader{stream: s})
	defer player.Close()
	player.Play()

	timer := time.NewTimer(time.Duration(cfg.duration * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	s.Stop()
	return nil
}
