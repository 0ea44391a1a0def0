package halftone

// Sampler provides source colors by normalized coordinate.
//
// u and v are in [0, 1] across the output surface, with (0, 0) at the
// top-left corner. Layer engines may request coordinates slightly outside
// that range for cells straddling the border; implementations decide how
// to address them (clamp-to-edge is typical).
//
// Sample must be safe for concurrent use: a frame is shaded by many
// goroutines at once.
type Sampler interface {
	Sample(u, v float64) RGB
}

// SamplerFunc adapts an ordinary function to the Sampler interface.
type SamplerFunc func(u, v float64) RGB

// Sample calls f(u, v).
func (f SamplerFunc) Sample(u, v float64) RGB {
	return f(u, v)
}

// Uniform is a Sampler that returns the same color everywhere.
type Uniform RGB

// Sample returns the uniform color.
func (c Uniform) Sample(_, _ float64) RGB {
	return RGB(c)
}
