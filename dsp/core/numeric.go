package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Decaying oscillator envelopes pass through this range after a few seconds.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2
}

// ClampFrequency limits freqHz to [0, Nyquist(sampleRate)].
// NaN maps to 0 so a bad host value degrades to silence-rate instead of
// poisoning the recurrence.
func ClampFrequency(freqHz, sampleRate float64) float64 {
	if math.IsNaN(freqHz) || freqHz < 0 {
		return 0
	}

	return math.Min(freqHz, Nyquist(sampleRate))
}

// MaxDampingPerSample bounds damping relative to the sample rate. Beyond it
// the squared per-sample decay exp(-2*damping/fs) leaves the normal float range.
const MaxDampingPerSample = 100.0

// ClampDamping limits damping to [0, MaxDampingPerSample*sampleRate].
// NaN and negative values map to 0.
func ClampDamping(damping, sampleRate float64) float64 {
	if math.IsNaN(damping) || damping < 0 {
		return 0
	}

	return math.Min(damping, MaxDampingPerSample*sampleRate)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
