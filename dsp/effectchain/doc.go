// Package effectchain hosts signal generators as configurable processing
// nodes.
//
// A [Registry] maps effect type names to factories. A [Chain] is loaded from
// a JSON node list, instantiates one [Runtime] per node and runs them in
// order over mono blocks. Node parameters arrive as a loose [Params] bag of
// numbers and strings; runtimes pick what they understand and ignore the
// rest.
//
// [DefaultRegistry] provides the "generator", "noise" and "tone-stream"
// runtimes built on package synth.
package effectchain
