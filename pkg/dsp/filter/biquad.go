// Package filter provides digital signal processing filters
package filter

import "math"

// Biquad implements a mono second-order IIR filter in Direct Form I
type Biquad struct {
	// Coefficients, normalized so a0 is 1
	b0, b1, b2 float64
	a1, a2     float64

	// State
	x1, x2 float64
	y1, y2 float64
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// SetCoefficients sets the filter coefficients directly
func (b *Biquad) SetCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	inv := 1.0 / a0
	b.b0 = b0 * inv
	b.b1 = b1 * inv
	b.b2 = b2 * inv
	b.a1 = a1 * inv
	b.a2 = a2 * inv
}

// Process filters one sample
func (b *Biquad) Process(x float32) float32 {
	x0 := float64(x)
	y0 := b.b0*x0 + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = x0
	b.y2 = b.y1
	b.y1 = y0

	return float32(y0)
}

// SetPeakingEQ configures an RBJ peaking filter
func (b *Biquad) SetPeakingEQ(sampleRate, frequency, q, gainDB float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	A := math.Pow(10.0, gainDB/40.0)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		1.0+alpha*A, -2.0*cosOmega, 1.0-alpha*A,
		1.0+alpha/A, -2.0*cosOmega, 1.0-alpha/A,
	)
}

// PeakEQ is a peaking biquad that only recomputes coefficients when its
// settings change.
type PeakEQ struct {
	Biquad
	sampleRate float64
	freq       float64
	gainDB     float64
	q          float64
	configured bool
}

// NewPeakEQ creates an unconfigured (flat) peaking filter
func NewPeakEQ() *PeakEQ {
	return &PeakEQ{Biquad: Biquad{b0: 1}}
}

// Configure sets center frequency (Hz), gain (dB) and Q. The frequency is
// kept below Nyquist and Q above zero.
func (p *PeakEQ) Configure(freq, gainDB, q, sampleRate float64) {
	if p.configured && freq == p.freq && gainDB == p.gainDB && q == p.q && sampleRate == p.sampleRate {
		return
	}
	p.freq, p.gainDB, p.q, p.sampleRate = freq, gainDB, q, sampleRate
	p.configured = true

	f := math.Max(1, math.Min(freq, 0.49*sampleRate))
	p.SetPeakingEQ(sampleRate, f, math.Max(q, 1e-3), gainDB)
}
