package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// ErrBand is returned for frequency bands an analysis cannot cover.
var ErrBand = errors.New("spectrum: invalid band")

// Band is the mean PSD over a fractional-octave band.
type Band struct {
	Center float64 // geometric centre, Hz
	Power  float64 // mean PSD over the band's bins
}

// Bands averages psd over consecutive bands of 1/perOctave octave between
// lowHz and highHz. binHz is the PSD bin spacing. Bands containing no bin are
// skipped.
func Bands(psd []float64, binHz, lowHz, highHz float64, perOctave int) ([]Band, error) {
	if binHz <= 0 || lowHz <= 0 || highHz <= lowHz || perOctave <= 0 {
		return nil, fmt.Errorf("%w: %v..%v Hz, %d per octave", ErrBand, lowHz, highHz, perOctave)
	}

	ratio := math.Pow(2, 1/float64(perOctave))
	var out []Band

	for lo := lowHz; lo < highHz; lo *= ratio {
		hi := math.Min(lo*ratio, highHz)
		first := int(math.Ceil(lo / binHz))
		last := min(int(math.Floor(hi/binHz)), len(psd)-1)

		if first > last {
			continue
		}

		sum := 0.0
		for k := first; k <= last; k++ {
			sum += psd[k]
		}

		out = append(out, Band{
			Center: math.Sqrt(lo * hi),
			Power:  sum / float64(last-first+1),
		})
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("%w: fewer than two populated bands in %v..%v Hz", ErrBand, lowHz, highHz)
	}

	return out, nil
}

// Slope fits a line to band level in dB against log2 frequency and returns
// its gradient in dB per octave. White noise gives about 0, brown -6, pink
// -3 and violet +6.
func Slope(bands []Band) (float64, error) {
	var xs, ys []float64
	for _, b := range bands {
		if b.Power <= 0 || b.Center <= 0 {
			continue
		}
		xs = append(xs, math.Log2(b.Center))
		ys = append(ys, 10*math.Log10(b.Power))
	}

	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: need two bands with power", ErrBand)
	}

	mx, my := mean(xs), mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}

	return sxy / sxx, nil
}

// SlopeOf is a one-shot PSD and slope estimate over lowHz..highHz using
// third-octave bands.
func (a *Analyzer) SlopeOf(signal []float64, lowHz, highHz float64) (float64, error) {
	psd, err := a.PSD(signal)
	if err != nil {
		return 0, err
	}

	bands, err := Bands(psd, a.BinHz(), lowHz, highHz, 3)
	if err != nil {
		return 0, err
	}

	return Slope(bands)
}

// PeakFrequency returns the centre frequency of the strongest bin above DC.
func PeakFrequency(psd []float64, binHz float64) float64 {
	if len(psd) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(psd); k++ {
		if psd[k] > psd[best] {
			best = k
		}
	}
	return float64(best) * binHz
}

func mean(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s / float64(len(x))
}
