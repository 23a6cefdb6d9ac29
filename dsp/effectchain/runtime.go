package effectchain

// Runtime is the per-node processing and configuration contract.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block []float64)
}

// Resetter is an optional interface for runtimes whose state can be restarted
// without reconfiguring them.
type Resetter interface {
	Reset()
}
