package synth

import "fmt"

// Variant picks which set of brown and pink noise constants a generator uses.
//
// The two sets come from two host integrations that were tuned separately;
// they are kept side by side instead of being merged.
type Variant int

const (
	// VariantGenerator is the generator-effect voicing: brown input weight 0.1
	// with unit output, recursive pink filter with alpha 0.4.
	VariantGenerator Variant = iota
	// VariantColored is the noise-effect voicing: brown input weight 0.2 with
	// output gain 2.5, FIR pink filter with alpha 0.5.
	VariantColored

	variantCount
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantGenerator:
		return "Generator"
	case VariantColored:
		return "Colored"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v >= 0 && v < variantCount
}
