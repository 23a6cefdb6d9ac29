package dither

import (
	"fmt"
	"strings"
)

// Kind selects the probability distribution of the dither noise.
type Kind int

const (
	// KindNone rounds without dither.
	KindNone Kind = iota
	// KindRectangular adds uniform noise of ±amplitude LSB.
	KindRectangular
	// KindTriangular adds the difference of two uniform draws (TPDF).
	KindTriangular
	// KindGaussian adds normal noise with amplitude as standard deviation.
	KindGaussian

	kindCount
)

var kindNames = [kindCount]string{"None", "Rectangular", "Triangular", "Gaussian"}

// String returns the kind name.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseKind accepts the kind names and the short forms "rpdf", "tpdf" and
// "gauss".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off":
		return KindNone, nil
	case "rectangular", "rpdf":
		return KindRectangular, nil
	case "triangular", "tpdf":
		return KindTriangular, nil
	case "gaussian", "gauss":
		return KindGaussian, nil
	}
	return KindNone, fmt.Errorf("dither: unknown kind %q", name)
}

// Shaping selects the error-feedback filter.
type Shaping int

const (
	// ShapingNone leaves the rounding error white.
	ShapingNone Shaping = iota
	// ShapingFirstOrder feeds back the previous error once (first-order highpass).
	ShapingFirstOrder
	// ShapingSecondOrder is a mild second-order highpass.
	ShapingSecondOrder
	// ShapingFWeighted3 follows the F-weighting curve with three taps.
	ShapingFWeighted3
	// ShapingFWeighted9 follows the F-weighting curve with nine taps.
	ShapingFWeighted9

	shapingCount
)

var shapingTaps = [shapingCount][]float64{
	ShapingNone:        nil,
	ShapingFirstOrder:  {1},
	ShapingSecondOrder: {1.0, -0.5},
	ShapingFWeighted3:  {1.623, -0.982, 0.109},
	ShapingFWeighted9: {
		2.412, -3.370, 3.937, -4.174, 3.353,
		-2.205, 1.281, -0.569, 0.0847,
	},
}

// Valid reports whether s is a known shaping filter.
func (s Shaping) Valid() bool {
	return s >= 0 && s < shapingCount
}

// Taps returns a copy of the feedback coefficients, nil for ShapingNone.
func (s Shaping) Taps() []float64 {
	if !s.Valid() || len(shapingTaps[s]) == 0 {
		return nil
	}
	return append([]float64(nil), shapingTaps[s]...)
}
