package spectrum

import (
	"fmt"
	"math"
)

// Window identifies the taper applied to each analysis segment.
type Window int

const (
	WindowHann Window = iota
	WindowRectangular
	WindowBlackman
)

// String returns the window name.
func (w Window) String() string {
	switch w {
	case WindowHann:
		return "Hann"
	case WindowRectangular:
		return "Rectangular"
	case WindowBlackman:
		return "Blackman"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// coefficients returns the periodic form of w, which tiles without gaps at
// 50% overlap.
func (w Window) coefficients(n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi / float64(n)

	for i := range out {
		x := step * float64(i)

		switch w {
		case WindowHann:
			out[i] = 0.5 - 0.5*math.Cos(x)
		case WindowBlackman:
			out[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		default:
			out[i] = 1
		}
	}

	return out
}
