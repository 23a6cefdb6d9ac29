package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tonegen/dsp/signal"
	"github.com/cwbudde/algo-tonegen/dsp/synth"
	"github.com/cwbudde/algo-tonegen/internal/testutil"
)

const testSampleRate = 48000.0

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"segment not power of two", WithSegmentSize(1000)},
		{"segment too small", WithSegmentSize(8)},
		{"overlap negative", WithOverlap(-0.1)},
		{"overlap too large", WithOverlap(0.95)},
		{"sample rate", WithSampleRate(1)},
		{"window", WithWindow(Window(9))},
	}
	for _, tt := range tests {
		if _, err := NewAnalyzer(tt.opt); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}

func TestAnalyzerSegments(t *testing.T) {
	a, err := NewAnalyzer(WithSegmentSize(1024), WithOverlap(0.5))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ n, want int }{
		{100, 0},
		{1024, 1},
		{1535, 1},
		{1536, 2},
		{4096, 7},
	}
	for _, tt := range tests {
		if got := a.Segments(tt.n); got != tt.want {
			t.Fatalf("Segments(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
	if _, err := a.PSD(make([]float64, 100)); !errors.Is(err, ErrShortSignal) {
		t.Fatalf("PSD(short) error = %v, want ErrShortSignal", err)
	}
}

func TestAnalyzerWindowPower(t *testing.T) {
	for _, w := range []Window{WindowHann, WindowBlackman} {
		a, err := NewAnalyzer(WithSegmentSize(512), WithWindow(w))
		if err != nil {
			t.Fatal(err)
		}
		want := 0.0
		for _, v := range w.coefficients(512) {
			want += v * v
		}
		if math.Abs(a.winPow-want) > 1e-9*want {
			t.Fatalf("%v: window power = %v, want %v", w, a.winPow, want)
		}
	}
}

func TestPSDIntegratesToPower(t *testing.T) {
	a, err := NewAnalyzer(WithSampleRate(testSampleRate), WithSegmentSize(2048))
	if err != nil {
		t.Fatal(err)
	}

	// A bin-centred sine of amplitude 0.5 carries power 0.125.
	f := 64 * a.BinHz()
	x := testutil.Cosine(f, testSampleRate, 0.3, 0.5, 1<<15)
	psd, err := a.PSD(x)
	if err != nil {
		t.Fatal(err)
	}

	total := 0.0
	for _, p := range psd {
		total += p * a.BinHz()
	}
	if math.Abs(total-0.125) > 0.125*0.02 {
		t.Fatalf("integrated power = %v, want 0.125", total)
	}
	if got := PeakFrequency(psd, a.BinHz()); got != f {
		t.Fatalf("peak = %v Hz, want %v Hz", got, f)
	}
}

func TestToneGeneratorPeak(t *testing.T) {
	c, err := synth.NewControls(synth.WithSampleRate(testSampleRate))
	if err != nil {
		t.Fatal(err)
	}
	c.SetFrequency(3000)
	g, err := synth.NewGenerator(c)
	if err != nil {
		t.Fatal(err)
	}
	x := make([]float64, 1<<15)
	g.Render(x)

	a, err := NewAnalyzer(WithSampleRate(testSampleRate), WithWindow(WindowBlackman))
	if err != nil {
		t.Fatal(err)
	}
	psd, err := a.PSD(x)
	if err != nil {
		t.Fatal(err)
	}
	if got := PeakFrequency(psd, a.BinHz()); math.Abs(got-3000) > a.BinHz() {
		t.Fatalf("peak = %v Hz, want 3000 Hz", got)
	}
}

func renderNoise(t *testing.T, f synth.Family, v synth.Variant, n int) []float64 {
	t.Helper()
	c, err := synth.NewNoiseControls(synth.WithSampleRate(testSampleRate), synth.WithFamily(f))
	if err != nil {
		t.Fatal(err)
	}
	g, err := synth.NewGenerator(c, synth.WithVariant(v), synth.WithSource(signal.NewNormal(signal.WithSeed(2024))))
	if err != nil {
		t.Fatal(err)
	}
	x := make([]float64, n)
	g.Render(x)
	return x
}

func TestNoiseColourSlopes(t *testing.T) {
	tests := []struct {
		family   synth.Family
		variant  synth.Variant
		min, max float64
	}{
		{synth.FamilyWhite, synth.VariantColored, -0.5, 0.5},
		{synth.FamilyBrown, synth.VariantColored, -6.8, -5.2},
		{synth.FamilyBrown, synth.VariantGenerator, -6.8, -5.2},
		{synth.FamilyViolet, synth.VariantColored, 5.2, 6.8},
		{synth.FamilyPink, synth.VariantColored, -4, -1.2},
		{synth.FamilyPink, synth.VariantGenerator, -4, -1.2},
	}

	a, err := NewAnalyzer(WithSampleRate(testSampleRate))
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		x := renderNoise(t, tt.family, tt.variant, 1<<17)
		slope, err := a.SlopeOf(x, 300, 6000)
		if err != nil {
			t.Fatalf("%v/%v: %v", tt.family, tt.variant, err)
		}
		if slope < tt.min || slope > tt.max {
			t.Fatalf("%v/%v: slope = %.2f dB/oct, want in [%v, %v]", tt.family, tt.variant, slope, tt.min, tt.max)
		}
	}
}

func TestBandsValidation(t *testing.T) {
	psd := make([]float64, 100)
	if _, err := Bands(psd, 10, 0, 100, 3); !errors.Is(err, ErrBand) {
		t.Fatalf("zero low edge: err = %v", err)
	}
	if _, err := Bands(psd, 10, 200, 100, 3); !errors.Is(err, ErrBand) {
		t.Fatalf("inverted band: err = %v", err)
	}
	if _, err := Bands(psd, 100, 101, 150, 3); !errors.Is(err, ErrBand) {
		t.Fatalf("empty band: err = %v", err)
	}
}

func TestSlopeOfSyntheticBands(t *testing.T) {
	bands := []Band{
		{Center: 100, Power: 1},
		{Center: 200, Power: 0.25},
		{Center: 400, Power: 0.0625},
	}
	got, err := Slope(bands)
	if err != nil {
		t.Fatal(err)
	}
	want := 10 * math.Log10(0.25)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Slope() = %v, want %v", got, want)
	}
}

func TestMeasure(t *testing.T) {
	l := Measure([]float64{1, -1, 1, -1})
	if l.RMS != 1 || l.Peak != 1 || l.DC != 0 || l.ZeroCrossings != 3 || l.CrestFactor != 1 {
		t.Fatalf("unexpected levels: %+v", l)
	}
	if l.RMS_dB != 0 || l.StdDev != 1 {
		t.Fatalf("RMS_dB=%v StdDev=%v", l.RMS_dB, l.StdDev)
	}

	empty := Measure(nil)
	if !math.IsInf(empty.RMS_dB, -1) || !math.IsInf(empty.Peak_dB, -1) {
		t.Fatalf("empty levels: %+v", empty)
	}

	silent := Measure(make([]float64, 8))
	if silent.CrestFactor != 0 || !math.IsInf(silent.Peak_dB, -1) {
		t.Fatalf("silent levels: %+v", silent)
	}
}

func TestMeasureGaussianStd(t *testing.T) {
	draws := testutil.NormalDraws(9, 1<<16)
	l := Measure(testutil.Scale(draws, 0.25))
	if math.Abs(l.StdDev-0.25) > 0.01 || math.Abs(l.DC) > 0.01 {
		t.Fatalf("std=%v dc=%v, want 0.25 and 0", l.StdDev, l.DC)
	}
}

func BenchmarkPSD(b *testing.B) {
	a, err := NewAnalyzer()
	if err != nil {
		b.Fatal(err)
	}
	x := testutil.NormalDraws(1, 1<<15)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := a.PSD(x); err != nil {
			b.Fatal(err)
		}
	}
}
