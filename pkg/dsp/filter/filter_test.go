package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// steadyGain runs a sine through process and returns output/input amplitude
func steadyGain(process func(float32) float32, freq, sampleRate float64) float64 {
	const n = 8192
	var peak float64
	for i := 0; i < n; i++ {
		y := float64(process(float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))))
		if i > n/2 {
			peak = math.Max(peak, math.Abs(y))
		}
	}
	return peak
}

func TestOnePoleLowpass(t *testing.T) {
	f := NewOnePole()
	f.SetCutoff(0.1, true)

	var y float32
	for i := 0; i < 2000; i++ {
		y = f.Process(1)
	}
	assert.InDelta(t, 1.0, y, 1e-4, "unity at DC")

	f.Reset()
	assert.Less(t, steadyGain(f.Process, 18000, 44100), 0.2)
}

func TestOnePoleHighpass(t *testing.T) {
	f := NewOnePole()
	f.SetCutoff(0.1, false)

	var y float32
	for i := 0; i < 2000; i++ {
		y = f.Process(1)
	}
	assert.InDelta(t, 0.0, y, 1e-4, "blocks DC")
}

func TestOnePoleStableAcrossDamping(t *testing.T) {
	for _, cutoff := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		f := NewOnePole()
		f.SetCutoff(cutoff, true)
		for i := 0; i < 10000; i++ {
			x := float32(1)
			if i%2 == 1 {
				x = -1
			}
			y := f.Process(x)
			assert.LessOrEqual(t, math.Abs(float64(y)), 1.0001, "cutoff %v", cutoff)
		}
	}
}

func TestPeakEQ(t *testing.T) {
	const sr = 44100.0
	eq := NewPeakEQ()
	eq.Configure(1000, 12, 1, sr)

	assert.InDelta(t, math.Pow(10, 12.0/20), steadyGain(eq.Process, 1000, sr), 0.05)

	eq.Reset()
	assert.InDelta(t, 1.0, steadyGain(eq.Process, 50, sr), 0.05)
}

func TestPeakEQFlatAtZeroGain(t *testing.T) {
	eq := NewPeakEQ()
	eq.Configure(500, 0, 1, 44100)
	for i := 0; i < 100; i++ {
		x := float32(math.Sin(float64(i)))
		assert.InDelta(t, x, eq.Process(x), 1e-5)
	}
}

func TestPeakEQCachesCoefficients(t *testing.T) {
	eq := NewPeakEQ()
	eq.Configure(2000, 6, 1, 44100)
	b0 := eq.b0

	eq.b0 = 42 // a repeat Configure must not touch coefficients
	eq.Configure(2000, 6, 1, 44100)
	assert.Equal(t, 42.0, eq.b0)

	eq.Configure(2000, 3, 1, 44100)
	assert.NotEqual(t, b0, eq.b0)
	assert.NotEqual(t, 42.0, eq.b0)
}

func TestPeakEQClampsAboveNyquist(t *testing.T) {
	eq := NewPeakEQ()
	eq.Configure(10000, 6, 1, 8000)
	for i := 0; i < 1000; i++ {
		y := eq.Process(float32(math.Sin(float64(i) * 0.3)))
		assert.False(t, math.IsNaN(float64(y)))
	}
}
