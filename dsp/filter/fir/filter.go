package fir

import (
	"math"
	"math/cmplx"
)

// Filter is a direct-form FIR filter over a circular delay line.
type Filter struct {
	coeffs []float64
	delay  []float64
	pos    int
}

// New creates a filter with a copy of coeffs. coeffs[k] weights the input k
// samples back.
func New(coeffs []float64) *Filter {
	return &Filter{
		coeffs: append([]float64(nil), coeffs...),
		delay:  make([]float64, len(coeffs)),
	}
}

// ProcessSample pushes x and returns
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x
	var y float64
	p := f.pos
	for _, c := range f.coeffs {
		y += c * f.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}

	f.pos++
	if f.pos == n {
		f.pos = 0
	}
	return y
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Len returns the number of coefficients.
func (f *Filter) Len() int { return len(f.coeffs) }

// Coefficients returns a copy of the coefficients.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Response returns H(e^{jw}) at freqHz for the given sample rate.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Rect(1, -w*float64(k))
	}
	return h
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
