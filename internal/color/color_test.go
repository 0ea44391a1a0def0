package color

import (
	"math"
	"testing"
)

func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, math.Pow((0.5+0.055)/1.055, 2.4)},
		{"below range", -0.5, 0},
		{"above range", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"mid gray linear", 0.21404, 1.055*math.Pow(0.21404, 1.0/2.4) - 0.055},
		{"overexposed", 2.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.input)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinearToSRGB_ExactWhite(t *testing.T) {
	// Full and overexposed intensities must survive truncation to 8 bits.
	for _, l := range []float64{1, 1.0001, 2.5, math.Inf(1)} {
		got := LinearToSRGB(l)
		if got != 1 {
			t.Errorf("LinearToSRGB(%v) = %v, want exactly 1", l, got)
		}
		if b := uint8(got * 255); b != 255 {
			t.Errorf("LinearToSRGB(%v) truncates to %d, want 255", l, b)
		}
	}
}

// Round trips must preserve 8-bit precision.
func TestRoundTrip(t *testing.T) {
	const maxError = 1.0 / 255.0

	for i := 0; i <= 255; i++ {
		srgb := float64(i) / 255.0
		if diff := math.Abs(LinearToSRGB(SRGBToLinear(srgb)) - srgb); diff > maxError {
			t.Errorf("round trip %d/255: diff %v", i, diff)
		}
	}
}

func TestLinear_SRGB(t *testing.T) {
	c := Gray(0.5).Mul(Linear{R: 1, G: 0.5, B: 0}).Add(Gray(0.1)).Scale(2)
	// (0.5+0.1)*2, (0.25+0.1)*2, (0+0.1)*2
	want := Linear{R: 1.2, G: 0.7, B: 0.2}
	if math.Abs(c.R-want.R) > 1e-12 || math.Abs(c.G-want.G) > 1e-12 || math.Abs(c.B-want.B) > 1e-12 {
		t.Fatalf("arithmetic = %+v, want %+v", c, want)
	}

	got := c.SRGB()
	if got.R != 1 {
		t.Errorf("overexposed red encoded as %v, want 1", got.R)
	}
	if math.Abs(got.G-LinearToSRGB(0.7)) > 1e-12 {
		t.Errorf("green = %v, want %v", got.G, LinearToSRGB(0.7))
	}
	if got.A != 1 {
		t.Errorf("alpha = %v, want 1", got.A)
	}
}

func BenchmarkLinearToSRGB(b *testing.B) {
	for b.Loop() {
		_ = LinearToSRGB(0.42)
	}
}
