package spectrum

import "math"

// Levels holds time-domain level statistics of a signal.
//
//nolint:revive
type Levels struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max |x|
	Peak_dB       float64
	CrestFactor   float64 // peak / RMS
	ZeroCrossings int
	StdDev        float64 // about the mean
}

// Measure computes Levels in one pass. dB fields are -Inf for silence.
func Measure(signal []float64) Levels {
	n := len(signal)
	if n == 0 {
		return Levels{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	var (
		mean, m2 float64
		sumSq    float64
		peak     float64
		zc       int
	)

	for i, x := range signal {
		// Welford update.
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))

		if i > 0 && signal[i-1]*x < 0 {
			zc++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))
	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}

	return Levels{
		Length:        n,
		DC:            mean,
		RMS:           rms,
		RMS_dB:        ampToDB(rms),
		Peak:          peak,
		Peak_dB:       ampToDB(peak),
		CrestFactor:   crest,
		ZeroCrossings: zc,
		StdDev:        math.Sqrt(m2 / float64(n)),
	}
}

func ampToDB(v float64) float64 {
	if v == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
