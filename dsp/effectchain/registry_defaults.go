package effectchain

import "github.com/cwbudde/algo-tonegen/dsp/synth"

// Built-in effect types.
const (
	TypeGenerator  = "generator"
	TypeNoise      = "noise"
	TypeToneStream = "tone-stream"
)

// DefaultRegistry returns a Registry pre-populated with the built-in
// generator runtimes.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeGenerator, func(ctx Context) (Runtime, error) {
		rt, err := newGeneratorRuntime(ctx, synth.VariantGenerator)
		if err != nil {
			return nil, err
		}

		return rt, nil
	})
	r.MustRegister(TypeNoise, func(ctx Context) (Runtime, error) {
		rt, err := newGeneratorRuntime(ctx, synth.VariantColored)
		if err != nil {
			return nil, err
		}

		return rt, nil
	})
	r.MustRegister(TypeToneStream, func(ctx Context) (Runtime, error) {
		rt, err := newToneStreamRuntime(ctx)
		if err != nil {
			return nil, err
		}

		return rt, nil
	})

	return r
}
