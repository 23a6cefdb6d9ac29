package synth

import (
	"fmt"
	"strings"
)

// Family selects the waveform or noise spectrum a generator produces.
type Family int

const (
	// FamilyTone is the damped two-pole resonator.
	FamilyTone Family = iota
	// FamilySaw is the smoothed phase ramp.
	FamilySaw
	// FamilyRect is the smoothed sign of the phase ramp.
	FamilyRect
	// FamilyVanDerPol is the relaxation oscillator.
	FamilyVanDerPol
	// FamilyWhite is unshaped Gaussian noise.
	FamilyWhite
	// FamilyBrown is leaky-integrated (red) noise.
	FamilyBrown
	// FamilyPink is binomially shaped 1/f noise.
	FamilyPink
	// FamilyViolet is first-differenced noise.
	FamilyViolet
	// FamilyGray is psychoacoustically weighted noise.
	FamilyGray

	familyCount // sentinel for validation
)

var familyNames = [familyCount]string{
	"Tone", "Saw", "Rect", "VanDerPol", "White", "Brown", "Pink", "Violet", "Gray",
}

// String returns the canonical family name.
func (f Family) String() string {
	if f.Valid() {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f >= 0 && f < familyCount
}

// IsNoise reports whether f draws from the Gaussian source.
func (f Family) IsNoise() bool {
	return f >= FamilyWhite && f < familyCount
}

// Families returns every family in tag order.
func Families() []Family {
	out := make([]Family, familyCount)
	for i := range out {
		out[i] = Family(i)
	}
	return out
}

// ParseFamily resolves a host-supplied family name. Both the short noise
// names ("Pink") and the suffixed forms ("PinkNoise") are accepted, as is
// "Red" for brown noise; matching ignores case and surrounding space.
//
// Unknown names resolve to fallback rather than failing: hosts pass free-form
// strings and the primary family is the documented behaviour for anything
// unrecognised. ok reports whether name matched.
func ParseFamily(name string, fallback Family) (f Family, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(key, "noise")
	if key == "red" {
		key = "brown"
	}
	for i, n := range familyNames {
		if strings.ToLower(n) == key {
			return Family(i), true
		}
	}
	if !fallback.Valid() {
		fallback = FamilyTone
	}
	return fallback, false
}
