package filter

import "math"

// OnePole is a first-order bilinear-transform filter.
type OnePole struct {
	a0, a1  float64
	z1      float64
	lowpass bool
}

// NewOnePole creates a pass-through filter
func NewOnePole() *OnePole {
	return &OnePole{a0: 1, lowpass: true}
}

// SetCutoff sets the cutoff as a fraction of Nyquist, clamped to (0, 1).
func (f *OnePole) SetCutoff(cutoff float64, lowpass bool) {
	cutoff = math.Max(1e-4, math.Min(cutoff, 0.9999))
	g := math.Tan(math.Pi * cutoff / 2)

	if lowpass {
		f.a1 = (g - 1) / (g + 1)
		f.a0 = g / (1 + g)
	} else {
		f.a1 = (g - 1) / (g + 1)
		f.a0 = 1 / (1 + g)
	}
	f.lowpass = lowpass
}

// Process filters one sample (transposed direct form II)
func (f *OnePole) Process(x float32) float32 {
	in := float64(x)
	y := f.a0*in + f.z1
	if f.lowpass {
		f.z1 = f.a0*in - f.a1*y
	} else {
		f.z1 = -f.a0*in - f.a1*y
	}
	return float32(y)
}

// Reset clears the filter state
func (f *OnePole) Reset() {
	f.z1 = 0
}
