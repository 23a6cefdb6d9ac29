package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"text/tabwriter"

	"github.com/cwbudde/algo-tonegen/measure/spectrum"
)

const (
	slopeLowHz  = 300
	slopeHighHz = 6000
)

var reportMu sync.Mutex

type signalReport struct {
	name   string
	levels spectrum.Levels
	peakHz float64
	slope  float64 // dB/octave, NaN when the signal is too short
}

func analyze(name string, samples []float64, sampleRate float64) (signalReport, error) {
	r := signalReport{
		name:   name,
		levels: spectrum.Measure(samples),
		peakHz: math.NaN(),
		slope:  math.NaN(),
	}

	a, err := spectrum.NewAnalyzer(spectrum.WithSampleRate(sampleRate))
	if err != nil {
		return r, err
	}
	psd, err := a.PSD(samples)
	if errors.Is(err, spectrum.ErrShortSignal) {
		return r, nil
	}
	if err != nil {
		return r, err
	}
	r.peakHz = spectrum.PeakFrequency(psd, a.BinHz())

	high := math.Min(slopeHighHz, 0.4*sampleRate)
	bands, err := spectrum.Bands(psd, a.BinHz(), slopeLowHz, high, 3)
	if errors.Is(err, spectrum.ErrBand) {
		return r, nil
	}
	if err != nil {
		return r, err
	}
	if r.slope, err = spectrum.Slope(bands); err != nil {
		return r, err
	}
	return r, nil
}

func (r signalReport) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	l := r.levels
	fmt.Fprintf(tw, "%s\n", r.name)
	fmt.Fprintf(tw, "  samples\t%d\n", l.Length)
	fmt.Fprintf(tw, "  dc\t%.6f\n", l.DC)
	fmt.Fprintf(tw, "  rms\t%.6f\t(%.2f dB)\n", l.RMS, l.RMS_dB)
	fmt.Fprintf(tw, "  peak\t%.6f\t(%.2f dB)\n", l.Peak, l.Peak_dB)
	fmt.Fprintf(tw, "  crest\t%.3f\n", l.CrestFactor)
	fmt.Fprintf(tw, "  zero crossings\t%d\n", l.ZeroCrossings)
	fmt.Fprintf(tw, "  peak frequency\t%.1f Hz\n", r.peakHz)
	fmt.Fprintf(tw, "  slope\t%.2f dB/octave\n", r.slope)
	return tw.Flush()
}
