package debug

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerRecord(t *testing.T) {
	p := NewProfiler(4)
	for _, d := range []time.Duration{3, 1, 2} {
		p.Record("block", d*time.Millisecond)
	}

	m, ok := p.Get("block")
	require.True(t, ok)
	assert.Equal(t, uint64(3), m.Count)
	assert.Equal(t, time.Millisecond, m.Min)
	assert.Equal(t, 3*time.Millisecond, m.Max)
	assert.Equal(t, 2*time.Millisecond, m.Last)
	assert.Equal(t, 2*time.Millisecond, m.Average())
	assert.Equal(t, 3*time.Millisecond, m.Percentile(100))
	assert.Equal(t, time.Millisecond, m.Percentile(0))

	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestProfilerRingKeepsRecent(t *testing.T) {
	p := NewProfiler(2)
	p.Record("x", 10*time.Millisecond)
	p.Record("x", 1*time.Millisecond)
	p.Record("x", 2*time.Millisecond)

	m, _ := p.Get("x")
	assert.Equal(t, 2*time.Millisecond, m.Percentile(100))
	assert.Equal(t, 10*time.Millisecond, m.Max)
}

func TestProfilerStartAndReport(t *testing.T) {
	p := NewProfiler(8)
	assert.Equal(t, "No measurements recorded", p.Report())

	stop := p.Start("render")
	stop()

	assert.Contains(t, p.Report(), "render: count=1")
	p.Reset()
	_, ok := p.Get("render")
	assert.False(t, ok)
}

func TestCPULoad(t *testing.T) {
	m := Measurement{Count: 1, Total: 5 * time.Millisecond}
	assert.InDelta(t, 50.0, m.CPULoad(1000, 10), 1e-9)
	assert.Zero(t, m.CPULoad(0, 10))
}
