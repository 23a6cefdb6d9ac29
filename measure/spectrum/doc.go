// Package spectrum measures rendered signals: averaged power spectral
// density, spectral slope in dB per octave, and time-domain levels.
//
// It is used to check that shaped noise has the expected colour, e.g. about
// -6 dB/octave for brown and +6 dB/octave for violet noise.
package spectrum
