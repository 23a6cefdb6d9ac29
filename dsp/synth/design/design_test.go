package design

import (
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/internal/testutil"
)

// runTone drives the resonator recurrence directly from designed values.
func runTone(c ToneCoefficients, s ToneState, n int) []float64 {
	out := make([]float64, n)
	x1, x2 := s.X1, s.X2
	for i := range out {
		out[i] = c.C * x1
		x1, x2 = c.A0*x1+c.A1*x2, x1
	}
	return out
}

func TestToneCoefficientsUndamped(t *testing.T) {
	c := Tone(1000, 0, 48000)
	om := math.Pi * 2 * 1000 / 48000

	if c.A1 != -1 {
		t.Fatalf("A1 = %v, want -1", c.A1)
	}
	if diff := math.Abs(c.A0 - 2*math.Cos(om)); diff > 1e-15 {
		t.Fatalf("A0 = %v, want %v", c.A0, 2*math.Cos(om))
	}
	if diff := math.Abs(c.C - math.Sin(om)); diff > 1e-12 {
		t.Fatalf("C = %v, want sin(omega) = %v", c.C, math.Sin(om))
	}
}

func TestToneGainNeverNaN(t *testing.T) {
	for _, fs := range []float64{8000, 44100, 48000, 96000} {
		for f := 0.0; f <= fs/2; f += fs / 517 {
			for _, damp := range []float64{0, 1, 50, 1e4} {
				c := Tone(f, damp, fs)
				if math.IsNaN(c.C) || c.C < 0 {
					t.Fatalf("Tone(%v, %v, %v).C = %v", f, damp, fs, c.C)
				}
			}
		}
		if c := Tone(fs/2, 0, fs); math.IsNaN(c.C) {
			t.Fatalf("Tone at nyquist produced NaN for fs=%v", fs)
		}
	}
}

func TestToneInitialMatchesPhase(t *testing.T) {
	tests := []struct {
		name    string
		freq    float64
		damping float64
		fs      float64
		phase   float64
	}{
		{name: "440 at 0 deg", freq: 440, fs: 44100, phase: 0},
		{name: "440 at 90 deg", freq: 440, fs: 44100, phase: 90},
		{name: "1k at 45 deg", freq: 1000, fs: 48000, phase: 45},
		{name: "damped 440 at 30 deg", freq: 440, damping: 25, fs: 44100, phase: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Tone(tt.freq, tt.damping, tt.fs)
			out := runTone(c, ToneInitial(c, tt.phase), 2)
			psi := tt.phase * math.Pi / 180
			om := math.Pi * 2 * tt.freq / tt.fs

			testutil.RequireSliceNearlyEqual(t, out, []float64{math.Cos(psi), math.Cos(om + psi)}, 1e-9)
		})
	}
}

func TestToneInitialSilentAtDC(t *testing.T) {
	c := Tone(0, 0, 48000)
	s := ToneInitial(c, 30)
	if s != (ToneState{}) {
		t.Fatalf("state = %+v, want zero", s)
	}
	for i, v := range runTone(c, s, 16) {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}

func TestToneSpectralPeak(t *testing.T) {
	const (
		fs   = 48000.0
		n    = 4096
		bin  = 200
		freq = bin * fs / n
	)

	c := Tone(freq, 0, fs)
	out := runTone(c, ToneInitial(c, 0), n)
	testutil.RequireFinite(t, out)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		t.Fatalf("NewPlan64() error = %v", err)
	}
	in := make([]complex128, n)
	for i, v := range out {
		in[i] = complex(v, 0)
	}
	bins := make([]complex128, n)
	if err := plan.Forward(bins, in); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	peak := 0
	for k := 1; k < n/2; k++ {
		if cmplx.Abs(bins[k]) > cmplx.Abs(bins[peak]) {
			peak = k
		}
	}
	if peak != bin {
		t.Fatalf("spectral peak at bin %d, want %d", peak, bin)
	}
}

func TestRampInitial(t *testing.T) {
	tests := []struct {
		phase float64
		want  float64
	}{
		{phase: 0, want: -1},
		{phase: 90, want: 0},
		{phase: 180, want: 1},
	}

	for _, tt := range tests {
		s := RampInitial(tt.phase)
		if math.Abs(s.Phase-tt.want) > 1e-12 {
			t.Fatalf("RampInitial(%v).Phase = %v, want %v", tt.phase, s.Phase, tt.want)
		}
		if s.Envelope != 1 || s.Smoothed != 0 {
			t.Fatalf("RampInitial(%v) = %+v, want envelope 1 and smoothed 0", tt.phase, s)
		}
	}
}

func TestRampCoefficients(t *testing.T) {
	c := Ramp(441, 0, 44100)
	if math.Abs(c.Increment-0.02) > 1e-15 {
		t.Fatalf("Increment = %v, want 0.02", c.Increment)
	}
	if c.Decay != 1 {
		t.Fatalf("Decay = %v, want 1", c.Decay)
	}

	damped := Ramp(441, 100, 44100)
	if want := math.Exp(-100.0 / 44100); math.Abs(damped.Decay-want) > 1e-15 {
		t.Fatalf("Decay = %v, want %v", damped.Decay, want)
	}
}

func TestVanDerPolCoefficients(t *testing.T) {
	tests := []struct {
		freq, fs, psi, phi float64
	}{
		{220, 48000, -0.0022983293476144047, 1.0043633169712056},
		{1000, 48000, -0.010555096960100485, 1.0199816263028207},
		{50, 44100, -0.0011354163820243013, 1.002156433220512},
	}
	for _, tt := range tests {
		c := VanDerPol(tt.freq, 0, tt.fs)
		if math.Abs(c.Psi-tt.psi) > 1e-12 || math.Abs(c.Phi-tt.phi) > 1e-12 {
			t.Fatalf("VanDerPol(%v, %v): psi=%v phi=%v, want %v %v", tt.freq, tt.fs, c.Psi, c.Phi, tt.psi, tt.phi)
		}
		if c.Decay != 1 {
			t.Fatalf("undamped Decay = %v, want 1", c.Decay)
		}
	}
}

func TestVanDerPolClampsStepSize(t *testing.T) {
	low := VanDerPol(10, 0, 48000)
	if want := VanDerPolMinFrequency / 48000; math.Abs(low.Step-want) > 1e-15 {
		t.Fatalf("Step = %v, want %v", low.Step, want)
	}

	high := VanDerPol(1e6, 0, 48000)
	if math.Abs(high.Step-0.5) > 1e-15 {
		t.Fatalf("Step = %v, want 0.5", high.Step)
	}

	for _, c := range []VanDerPolCoefficients{low, high, VanDerPol(440, 3, 44100)} {
		testutil.RequireFinite(t, []float64{c.Psi, c.Phi, c.Step, c.Decay})
	}

	if s := VanDerPolInitial(); s.P != 1 || s.Q != 0 || s.Envelope != 1 {
		t.Fatalf("VanDerPolInitial() = %+v", s)
	}
}

func TestBinomialTaps(t *testing.T) {
	got := BinomialTaps(3, 0.5)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.1171875, 0.15625, 0.25}, 1e-15)

	if BinomialTaps(0, 0.5) != nil {
		t.Fatal("expected nil taps for n=0")
	}

	pink := BinomialTaps(PinkTaps, PinkAlphaGenerator)
	if len(pink) != PinkTaps {
		t.Fatalf("len = %d, want %d", len(pink), PinkTaps)
	}
	if pink[PinkTaps-1] != PinkAlphaGenerator/2 {
		t.Fatalf("last tap = %v, want %v", pink[PinkTaps-1], PinkAlphaGenerator/2)
	}
}

func TestGrayTapsSymmetric(t *testing.T) {
	n := len(GrayTaps)
	for i := 0; i < n/2; i++ {
		if GrayTaps[i] != GrayTaps[n-1-i] {
			t.Fatalf("GrayTaps[%d] = %v, GrayTaps[%d] = %v", i, GrayTaps[i], n-1-i, GrayTaps[n-1-i])
		}
	}
}

func TestDecayFactor(t *testing.T) {
	if got := DecayFactor(0, 48000); got != 1 {
		t.Fatalf("DecayFactor(0) = %v, want 1", got)
	}
	if got := DecayFactor(10, 48000); !(got < 1 && got > 0) {
		t.Fatalf("DecayFactor(10) = %v, want in (0, 1)", got)
	}
}

func TestTonePoleRadiusExact(t *testing.T) {
	for _, damping := range []float64{0, 3, 250, 4800} {
		c := Tone(1000, damping, 48000)
		d := math.Exp(-damping / 48000)
		if want := -d * d; c.A1 != want {
			t.Fatalf("damping=%v: A1 = %v, want %v", damping, c.A1, -d*d)
		}
	}
}

func TestToneInitialSteepDecay(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
	}{
		{"representable", 4.8e6},
		{"overflow", 1.5e7},
		{"underflow", 1e9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Tone(1000, tt.damping, 48000)
			s := ToneInitial(c, 0)
			if !core.IsFinite(s.X1) || !core.IsFinite(s.X2) {
				t.Fatalf("ToneInitial() = %+v, want finite registers", s)
			}
			testutil.RequireFinite(t, runTone(c, s, 16))
		})
	}
}
