// Package synth implements the parametric tone and colored-noise generators.
//
// The package is split along the control/render boundary:
//
//   - [Controls] holds parameter values and three dirty flags. Its setters
//     only store values and raise flags, so they may run on a control thread
//     while audio renders elsewhere.
//   - [Generator] owns filter coefficients and recursion state. At the start
//     of every render call it consumes the flags in the fixed order
//     type, parameters, reset and re-runs the designers from dsp/synth/design
//     only when a flag demands it. The per-sample step is a single switch
//     over the active [Family].
//   - [Effect] adds gain*generator+offset onto a pass-through signal.
//   - [Stream] is a standalone source with start/stop transport.
//
// A Generator and the Effect or Stream wrapping it belong to one render
// call path; they take no locks.
package synth
