package effectchain

import (
	"encoding/json"
	"errors"
)

const testSampleRate = 48000.0

func testCtx() Context {
	return Context{SampleRate: testSampleRate}
}

// stubRuntime records its calls.
type stubRuntime struct {
	configureErr   error
	configureCalls int
	processCalls   int
	resetCalls     int
	lastCtx        Context
	lastParams     Params
}

func (s *stubRuntime) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubRuntime) Process(_ []float64) {
	s.processCalls++
}

func (s *stubRuntime) Reset() {
	s.resetCalls++
}

// gainRuntime multiplies every sample by a fixed gain.
type gainRuntime struct {
	gain float64
}

func (g *gainRuntime) Configure(_ Context, params Params) error {
	g.gain = params.GetNum("gain", 1.0)

	return nil
}

func (g *gainRuntime) Process(block []float64) {
	for i := range block {
		block[i] *= g.gain
	}
}

// addRuntime adds a constant to every sample.
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(_ Context, params Params) error {
	a.value = params.GetNum("value", 0)

	return nil
}

func (a *addRuntime) Process(block []float64) {
	for i := range block {
		block[i] += a.value
	}
}

var errStubConfigure = errors.New("stub configure failed")

// testRegistry creates a registry with simple test effects.
func testRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("stub", func(_ Context) (Runtime, error) {
		return &stubRuntime{}, nil
	})
	r.MustRegister("failing", func(_ Context) (Runtime, error) {
		return &stubRuntime{configureErr: errStubConfigure}, nil
	})
	r.MustRegister("gain", func(_ Context) (Runtime, error) {
		return &gainRuntime{gain: 1.0}, nil
	})
	r.MustRegister("add", func(_ Context) (Runtime, error) {
		return &addRuntime{}, nil
	})

	return r
}

// buildChainJSON constructs a JSON chain description for testing.
func buildChainJSON(nodes ...chainNode) string {
	data, err := json.Marshal(chainState{Nodes: nodes})
	if err != nil {
		panic(err)
	}

	return string(data)
}
