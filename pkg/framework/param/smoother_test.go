package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoother(t *testing.T) {
	t.Run("LinearSmoothing", func(t *testing.T) {
		smoother := NewSmoother(LinearSmoothing, 10) // 10 samples
		smoother.Reset(0.0)
		smoother.SetTarget(1.0)

		for i := 0; i < 10; i++ {
			expected := float64(i+1) * 0.1
			assert.InDelta(t, expected, smoother.Next(), 0.001, "sample %d", i)
		}

		assert.Equal(t, 1.0, smoother.Next(), "should stay at target")
		assert.False(t, smoother.IsSmoothing())
	})

	t.Run("ExponentialSmoothing", func(t *testing.T) {
		smoother := NewSmoother(ExponentialSmoothing, 0.9)
		smoother.Reset(0.0)
		smoother.SetTarget(1.0)

		prev := 0.0
		for i := 0; i < 50; i++ {
			value := smoother.Next()
			require.Greater(t, value, prev, "value should be increasing")
			require.Less(t, value, 1.0, "should not exceed target")
			prev = value
		}

		for i := 0; i < 200; i++ {
			smoother.Next()
		}
		assert.False(t, smoother.IsSmoothing(), "should have reached target by now")
	})

	t.Run("LogarithmicSmoothing", func(t *testing.T) {
		smoother := NewSmoother(LogarithmicSmoothing, 10)
		smoother.Reset(100.0)
		smoother.SetTarget(1000.0)

		values := make([]float64, 0, 10)
		for i := 0; i < 10; i++ {
			values = append(values, smoother.Next())
		}

		// Constant ratio between consecutive values
		ratio := values[1] / values[0]
		for i := 2; i < len(values); i++ {
			assert.InDelta(t, ratio, values[i]/values[i-1], 0.01)
		}
		assert.Equal(t, 1000.0, values[9])
	})

	t.Run("LogarithmicDownward", func(t *testing.T) {
		smoother := NewSmoother(LogarithmicSmoothing, 4)
		smoother.Reset(1.0)
		smoother.SetTarget(0.5)

		prev := 1.0
		for i := 0; i < 4; i++ {
			v := smoother.Next()
			assert.Less(t, v, prev)
			prev = v
		}
		assert.Equal(t, 0.5, smoother.Current())
		assert.False(t, smoother.IsSmoothing())
	})

	t.Run("ZeroRateSnaps", func(t *testing.T) {
		smoother := NewSmoother(LinearSmoothing, 0)
		smoother.Reset(0.0)
		smoother.SetTarget(0.75)
		assert.Equal(t, 0.75, smoother.Next())
	})
}

func TestSmootherSetTime(t *testing.T) {
	linear := NewSmoother(LinearSmoothing, 0)
	linear.SetTime(48000, 50)
	linear.Reset(0)
	linear.SetTarget(1)

	steps := 0
	for linear.IsSmoothing() {
		linear.Next()
		steps++
	}
	assert.InDelta(t, 2400, steps, 1)

	exp := NewSmoother(ExponentialSmoothing, 0)
	exp.SetTime(48000, 50)
	assert.InDelta(t, math.Exp(-6.908/2400), exp.rate, 1e-12)
}
