// Package fir provides the direct-form FIR filter used for noise shaping.
//
// A [Filter] keeps its input history in a circular delay line and is meant for
// short kernels such as the binomial pink and gray weightings or the error
// feedback of a dithering quantizer. A leading zero coefficient delays the
// output by one sample, so the newest input only reaches the output on the
// next call.
package fir
