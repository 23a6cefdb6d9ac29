// Package dither converts rendered float signals to integer PCM.
//
// A [Quantizer] scales [-1, 1] input to the signed range of the target bit
// depth, optionally adds dither noise before rounding and feeds the rounding
// error back through a small FIR so it is pushed out of the audible band.
// Without dither and shaping it is a plain round-and-clip.
package dither
