package buffer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteAheadBuffer(t *testing.T) {
	buf := NewWithLatency(44100, DefaultLatency)

	assert.Equal(t, 2205, buf.Latency())
	size := buf.Size()
	assert.Zero(t, size&(size-1), "size must be a power of two")
	assert.GreaterOrEqual(t, size, 4*buf.Latency())
}

func TestWriteReadDelay(t *testing.T) {
	buf := NewWithLatency(1000, 4*time.Millisecond)
	require.Equal(t, 4, buf.Latency())

	require.NoError(t, buf.Write([]float32{1, 2, 3, 4, 5}))

	out := make([]float32, 5)
	n := buf.Read(out)
	assert.Equal(t, 5, n)
	assert.Equal(t, []float32{0, 0, 0, 0, 1}, out)

	require.NoError(t, buf.Write([]float32{6, 7, 8, 9, 10}))
	buf.Read(out)
	assert.Equal(t, []float32{2, 3, 4, 5, 6}, out)
}

func TestOverrun(t *testing.T) {
	buf := NewWithLatency(1000, 2*time.Millisecond)
	big := make([]float32, buf.Size())

	err := buf.Write(big)
	assert.ErrorIs(t, err, ErrOverrun)
	assert.Equal(t, uint64(1), buf.Health().Overruns)
}

func TestUnderrunZeroesTail(t *testing.T) {
	buf := NewWithLatency(1000, 2*time.Millisecond)
	out := []float32{9, 9, 9, 9}

	n := buf.Read(out)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
	assert.Equal(t, uint64(1), buf.Health().Underruns)
}

func TestReset(t *testing.T) {
	buf := NewWithLatency(1000, 4*time.Millisecond)
	require.NoError(t, buf.Write([]float32{1, 1, 1}))
	buf.Reset()

	stats := buf.Health()
	assert.Equal(t, uint64(4), stats.LatencySamples)
	assert.Zero(t, stats.Overruns)
}

func TestConcurrentWriteRead(t *testing.T) {
	buf := NewWithLatency(48000, 10*time.Millisecond)
	const blocks = 200
	block := make([]float32, 64)
	for i := range block {
		block[i] = 1
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < blocks; i++ {
			_ = buf.Write(block)
		}
	}()
	go func() {
		defer wg.Done()
		out := make([]float32, 64)
		for i := 0; i < blocks; i++ {
			buf.Read(out)
		}
	}()
	wg.Wait()

	for _, v := range buf.data {
		assert.True(t, v == 0 || v == 1)
	}
}

func TestLargeBlockFits(t *testing.T) {
	buf := NewWithLatencyAndBlock(44100, DefaultLatency, 16384)
	assert.GreaterOrEqual(t, buf.Size(), buf.Latency()+16384)

	block := make([]float32, 16384)
	out := make([]float32, 16384)
	for i := 0; i < 3; i++ {
		require.NoError(t, buf.Write(block))
		assert.Equal(t, len(out), buf.Read(out))
	}
	assert.Zero(t, buf.Health().Underruns)
	assert.Zero(t, buf.Health().Overruns)
}
