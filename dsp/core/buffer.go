package core

// Frame is one stereo sample pair.
type Frame struct {
	L, R float64
}

// Mono returns a Frame carrying v on both channels.
func Mono(v float64) Frame {
	return Frame{L: v, R: v}
}

// Add returns the channel-wise sum of f and o.
func (f Frame) Add(o Frame) Frame {
	return Frame{L: f.L + o.L, R: f.R + o.R}
}

// Scale returns f with both channels multiplied by g.
func (f Frame) Scale(g float64) Frame {
	return Frame{L: f.L * g, R: f.R * g}
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroFrames sets all frames in buf to silence.
func ZeroFrames(buf []Frame) {
	for i := range buf {
		buf[i] = Frame{}
	}
}

// Interleave writes frames as L/R pairs into dst and returns the number of
// frames written. dst must hold 2*len(frames) values for a full copy.
func Interleave(dst []float64, frames []Frame) int {
	n := len(frames)
	if len(dst)/2 < n {
		n = len(dst) / 2
	}
	for i := 0; i < n; i++ {
		dst[2*i] = frames[i].L
		dst[2*i+1] = frames[i].R
	}
	return n
}
