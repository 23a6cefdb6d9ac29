// Package design converts continuous generator parameters into the discrete
// coefficients and initial states consumed by the per-sample recurrences in
// dsp/synth.
//
// Every function here is pure: the result depends only on its arguments.
// Frequencies are expected to be pre-clamped to [0, sampleRate/2]; within
// that domain every designer is total.
//
// Families:
//   - Tone: two-pole resonator with phase-exact initial conditions.
//   - Ramp: phase accumulator for saw and rectangle, smoothed and enveloped.
//   - VanDerPol: relaxation oscillator linearized around a fixed stiffness.
//   - Noise shaping taps: binomial (pink) and fixed gray FIR coefficients.
package design
