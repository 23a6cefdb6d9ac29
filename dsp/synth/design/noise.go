package design

// Noise shaping constants. The generator path and the colored-noise path use
// different brown and pink constants; both sets are kept as named variants.
const (
	// BrownLeak is the integrator leak of the brown/red noise filter.
	BrownLeak = 0.01
	// BrownWeightGenerator is the input weight on the generator path.
	BrownWeightGenerator = 0.1
	// BrownWeightColored is the input weight on the colored-noise path.
	BrownWeightColored = 0.2
	// BrownGainColored scales the colored-noise brown output.
	BrownGainColored = 2.5

	// PinkTaps is the tap count of both pink filters.
	PinkTaps = 10
	// PinkAlphaGenerator is the binomial exponent of the recursive pink filter.
	PinkAlphaGenerator = 0.4
	// PinkAlphaColored is the binomial exponent of the FIR pink filter.
	PinkAlphaColored = 0.5
	// PinkWeightGenerator is the input weight of the recursive pink filter.
	PinkWeightGenerator = 0.2
)

// GrayTaps is the symmetric psychoacoustic FIR used for gray noise.
var GrayTaps = [7]float64{
	0.13095192, 0.14271321, -0.10107508, 0.65481989, -0.10107508, 0.14271321, 0.13095192,
}

// BinomialTaps returns n taps of the fractional binomial series
//
//	g[0] = 1, g[i] = g[i-1]*(alpha/2 + i - 1)/i
//
// stored in reverse order, so taps[n-i] = g[i] for i = 1..n. The pink filters
// weight the sample i steps back with taps[i-1].
func BinomialTaps(n int, alpha float64) []float64 {
	if n <= 0 {
		return nil
	}
	taps := make([]float64, n)
	g := 1.0
	for i := 1; i <= n; i++ {
		g *= (alpha/2 + float64(i-1)) / float64(i)
		taps[n-i] = g
	}
	return taps
}
