package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-tonegen/dsp/dither"
)

const pcmBitDepth = 16

// writeWAV stores samples as a mono 16-bit PCM file, quantized by q.
func writeWAV(path string, samples []float64, sampleRate int, q *dither.Quantizer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, pcmBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           q.QuantizeBlock(nil, samples),
		SourceBitDepth: pcmBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return enc.Close()
}

func newQuantizer(kind dither.Kind, seed uint64) (*dither.Quantizer, error) {
	opts := []dither.Option{dither.WithBitDepth(pcmBitDepth), dither.WithKind(kind)}
	if seed != 0 {
		opts = append(opts, dither.WithSeed(seed))
	}
	return dither.NewQuantizer(opts...)
}
