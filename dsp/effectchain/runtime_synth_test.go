package effectchain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

func loadDefault(t *testing.T, nodes ...chainNode) *Chain {
	t.Helper()

	c := New(testCtx(), DefaultRegistry())

	err := c.LoadJSON(buildChainJSON(nodes...))
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}

	return c
}

func TestDefaultRegistryTypes(t *testing.T) {
	t.Parallel()

	got := DefaultRegistry().Types()
	want := []string{TypeGenerator, TypeNoise, TypeToneStream}

	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Types() = %v, want %v", got, want)
		}
	}
}

func TestGeneratorRuntimeConfigure(t *testing.T) {
	t.Parallel()

	c := loadDefault(t, chainNode{ID: "osc", Type: TypeGenerator, Params: map[string]any{
		"type":      "Saw",
		"frequency": 30000.0,
		"damping":   2.0,
		"phase":     45.0,
		"gain":      -6.0,
		"offset":    0.1,
	}})

	rt := c.NodeRuntime("osc").(*generatorRuntime)
	ctrl := rt.Effect().Controls()

	if ctrl.Family() != synth.FamilySaw {
		t.Errorf("family = %v, want Saw", ctrl.Family())
	}

	if ctrl.SampleRate() != testSampleRate || ctrl.Frequency() != testSampleRate/2 {
		t.Errorf("sampleRate=%v frequency=%v", ctrl.SampleRate(), ctrl.Frequency())
	}

	if ctrl.Damping() != 2 || ctrl.Phase() != 45 || ctrl.GainDB() != -6 || ctrl.Offset() != 0.1 {
		t.Errorf("unexpected controls: %+v", ctrl.Snapshot())
	}

	if rt.Effect().Generator().Variant() != synth.VariantGenerator {
		t.Errorf("variant = %v, want Generator", rt.Effect().Generator().Variant())
	}
}

func TestGeneratorRuntimeAddsTone(t *testing.T) {
	t.Parallel()

	c := loadDefault(t, chainNode{ID: "osc", Type: TypeGenerator, Params: map[string]any{
		"type":      "Tone",
		"frequency": 1000.0,
	}})

	block := make([]float64, 48)
	for i := range block {
		block[i] = 0.5
	}

	c.Process(block)

	for n, v := range block {
		want := 0.5 + math.Cos(2*math.Pi*float64(n)/48)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("block[%d] = %v, want %v", n, v, want)
		}
	}
}

func TestGeneratorRuntimeReloadKeepsPhase(t *testing.T) {
	t.Parallel()

	node := chainNode{ID: "osc", Type: TypeGenerator, Params: map[string]any{
		"type":      "Tone",
		"frequency": 1000.0,
		"phase":     0.0,
		"gain":      0.0,
	}}

	tests := []struct {
		name   string
		reload func(c *Chain) error
	}{
		{"same json", func(c *Chain) error { return c.LoadJSON(buildChainJSON(node)) }},
		{"same context", func(c *Chain) error { return c.SetContext(testCtx()) }},
		{"clamped frequency", func(c *Chain) error {
			n := node
			n.Params = map[string]any{"type": "tone", "frequency": 1000.0, "phase": 0.0}
			return c.LoadJSON(buildChainJSON(n))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := loadDefault(t, node)
			c.Process(make([]float64, 12))

			err := tt.reload(c)
			if err != nil {
				t.Fatal(err)
			}

			ctrl := c.NodeRuntime("osc").(*generatorRuntime).Effect().Controls()
			if typ, params, reset := ctrl.Pending(); typ || params || reset {
				t.Fatalf("pending flags after reload: type=%v params=%v reset=%v", typ, params, reset)
			}

			block := make([]float64, 4)
			c.Process(block)

			for i, v := range block {
				want := math.Cos(2 * math.Pi * float64(12+i) / 48)
				if math.Abs(v-want) > 1e-9 {
					t.Fatalf("block[%d] = %v, want %v", i, v, want)
				}
			}
		})
	}
}

func TestGeneratorRuntimeReloadAppliesChanges(t *testing.T) {
	t.Parallel()

	node := chainNode{ID: "osc", Type: TypeGenerator, Params: map[string]any{"frequency": 1000.0}}
	c := loadDefault(t, node)
	c.Process(make([]float64, 12))

	node.Params = map[string]any{"frequency": 1000.0, "phase": 90.0}

	err := c.LoadJSON(buildChainJSON(node))
	if err != nil {
		t.Fatal(err)
	}

	block := make([]float64, 2)
	c.Process(block)

	// A phase change restarts the tone on the new phase.
	if math.Abs(block[0]) > 1e-9 || math.Abs(block[1]+math.Sin(2*math.Pi/48)) > 1e-9 {
		t.Fatalf("block = %v, want restart at 90 degrees", block)
	}
}

func TestNoiseRuntimeDefaultsAndFallback(t *testing.T) {
	t.Parallel()

	c := loadDefault(t, chainNode{ID: "n", Type: TypeNoise, Params: map[string]any{"type": "Ultraviolet"}})

	rt := c.NodeRuntime("n").(*generatorRuntime)
	ctrl := rt.Effect().Controls()

	if ctrl.Family() != synth.FamilyWhite || ctrl.Std() != 0.25 {
		t.Errorf("family=%v std=%v, want White 0.25", ctrl.Family(), ctrl.Std())
	}

	if rt.Effect().Generator().Variant() != synth.VariantColored {
		t.Errorf("variant = %v, want Colored", rt.Effect().Generator().Variant())
	}
}

func TestNoiseRuntimeSeedIsReproducible(t *testing.T) {
	t.Parallel()

	node := chainNode{ID: "n", Type: TypeNoise, Params: map[string]any{"type": "PinkNoise", "seed": 7.0}}

	a := make([]float64, 256)
	loadDefault(t, node).Process(a)

	b := make([]float64, 256)
	loadDefault(t, node).Process(b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	c := New(testCtx(), DefaultRegistry())

	err := c.LoadJSON(buildChainJSON(chainNode{ID: "n", Type: TypeNoise, Params: map[string]any{"seed": -1.0}}))
	if err == nil {
		t.Fatal("expected error for negative seed")
	}
}

func TestGeneratorRuntimeFollowsContext(t *testing.T) {
	t.Parallel()

	c := loadDefault(t, chainNode{ID: "osc", Type: TypeGenerator, Params: map[string]any{"frequency": 20000.0}})

	err := c.SetContext(Context{SampleRate: 22050})
	if err != nil {
		t.Fatal(err)
	}

	ctrl := c.NodeRuntime("osc").(*generatorRuntime).Effect().Controls()
	if ctrl.SampleRate() != 22050 {
		t.Fatalf("sample rate = %v, want 22050", ctrl.SampleRate())
	}

	if ctrl.Frequency() != 11025 {
		t.Fatalf("frequency = %v, want 11025", ctrl.Frequency())
	}
}

func TestToneStreamRuntime(t *testing.T) {
	t.Parallel()

	node := chainNode{ID: "s", Type: TypeToneStream, Params: map[string]any{
		"type":         "Rect",
		"frequency":    100.0,
		"bufferLength": 0.25,
	}}
	c := loadDefault(t, node)
	rt := c.NodeRuntime("s").(*toneStreamRuntime)

	block := []float64{1, 1, 1, 1}
	c.Process(block)

	for i, v := range block {
		if v != 0 {
			t.Fatalf("stopped stream block[%d] = %v, want 0", i, v)
		}
	}

	if rt.Stream().BufferLength() != 0.25 {
		t.Fatalf("buffer length = %v, want 0.25", rt.Stream().BufferLength())
	}

	node.Params = map[string]any{"playing": true}

	err := c.LoadJSON(buildChainJSON(node))
	if err != nil {
		t.Fatal(err)
	}

	if c.NodeRuntime("s") != rt || !rt.Stream().IsPlaying() {
		t.Fatal("stream runtime not reused or not playing")
	}

	block = make([]float64, 480)
	c.Process(block)

	if block[0] != 0 || math.Abs(block[10]+1) > 1e-6 {
		t.Fatalf("rect stream output: block[0]=%v block[10]=%v", block[0], block[10])
	}

	if got := rt.Stream().PlaybackPosition(); math.Abs(got-0.01) > 1e-12 {
		t.Fatalf("position = %v, want 0.01", got)
	}

	node.Params = map[string]any{"playing": false}

	err = c.LoadJSON(buildChainJSON(node))
	if err != nil {
		t.Fatal(err)
	}

	if rt.Stream().IsPlaying() {
		t.Fatal("stream still playing after playing=false")
	}
}
