// Package buffer provides the lock-free write-ahead buffer used to absorb
// garbage collection pauses between the processor and the host.
package buffer

import (
	"errors"
	"math"
	"sync/atomic"
	"time"
)

// DefaultLatency is the write-ahead distance used by the buffered processor.
const DefaultLatency = 50 * time.Millisecond

// ErrOverrun is returned when a write does not fit.
var ErrOverrun = errors.New("buffer overrun")

// WriteAheadBuffer is a single-reader, single-writer ring whose read side
// always trails the write side by a fixed number of samples.
type WriteAheadBuffer struct {
	data     []float32
	mask     uint64
	latency  uint64
	readPos  atomic.Uint64
	writePos atomic.Uint64

	underruns   atomic.Uint64
	overruns    atomic.Uint64
	adjustments atomic.Uint64
}

// Stats is a snapshot of buffer health.
type Stats struct {
	Underruns      uint64
	Overruns       uint64
	Adjustments    uint64
	FillPercentage float32
	LatencySamples uint64
}

// NewWithLatency creates a mono buffer with the given write-ahead distance.
// Capacity is four times the latency, rounded up to a power of two.
func NewWithLatency(sampleRate float64, latency time.Duration) *WriteAheadBuffer {
	return NewWithLatencyAndBlock(sampleRate, latency, 0)
}

// NewWithLatencyAndBlock is NewWithLatency for a writer that pushes up to
// maxBlock samples at a time. Capacity is at least latency plus one block.
func NewWithLatencyAndBlock(sampleRate float64, latency time.Duration, maxBlock int) *WriteAheadBuffer {
	samples := uint64(math.Round(latency.Seconds() * sampleRate))
	size := samples * 4
	if maxBlock > 0 {
		size = max(size, samples+uint64(maxBlock))
	}
	size = nextPowerOf2(size)

	b := &WriteAheadBuffer{
		data:    make([]float32, size),
		mask:    size - 1,
		latency: samples,
	}
	b.writePos.Store(samples)
	return b
}

// Latency returns the write-ahead distance in samples.
func (b *WriteAheadBuffer) Latency() int {
	return int(b.latency)
}

// Size returns the capacity in samples.
func (b *WriteAheadBuffer) Size() int {
	return len(b.data)
}

// Write appends samples. Nothing is written if they do not all fit.
func (b *WriteAheadBuffer) Write(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	w := b.writePos.Load()
	used := w - b.readPos.Load()
	if uint64(len(b.data))-used < uint64(len(samples)) {
		b.overruns.Add(1)
		return ErrOverrun
	}

	for len(samples) > 0 {
		idx := w & b.mask
		n := copy(b.data[idx:], samples)
		samples = samples[n:]
		w += uint64(n)
	}
	b.writePos.Store(w)
	return nil
}

// Read fills out with delayed samples and returns how many were available.
// The unfilled tail of out is zeroed.
func (b *WriteAheadBuffer) Read(out []float32) int {
	if len(out) == 0 {
		return 0
	}
	b.maintainDelay()

	r := b.readPos.Load()
	available := b.writePos.Load() - r
	toRead := len(out)
	if available < uint64(toRead) {
		toRead = int(available)
		b.underruns.Add(1)
	}

	dst := out[:toRead]
	for len(dst) > 0 {
		idx := r & b.mask
		n := copy(dst, b.data[idx:])
		dst = dst[n:]
		r += uint64(n)
	}
	b.readPos.Store(r)

	clear(out[toRead:])
	return toRead
}

// maintainDelay moves the reader back so it trails the writer by at least the latency.
func (b *WriteAheadBuffer) maintainDelay() {
	for {
		r := b.readPos.Load()
		w := b.writePos.Load()
		if w-r >= b.latency {
			return
		}
		if b.readPos.CompareAndSwap(r, w-b.latency) {
			b.adjustments.Add(1)
			return
		}
	}
}

// Health returns current buffer statistics.
func (b *WriteAheadBuffer) Health() Stats {
	gap := b.writePos.Load() - b.readPos.Load()
	return Stats{
		Underruns:      b.underruns.Load(),
		Overruns:       b.overruns.Load(),
		Adjustments:    b.adjustments.Load(),
		FillPercentage: float32(gap) / float32(len(b.data)) * 100,
		LatencySamples: gap,
	}
}

// Reset clears the buffer and restores the initial write-ahead.
func (b *WriteAheadBuffer) Reset() {
	clear(b.data)
	b.readPos.Store(0)
	b.writePos.Store(b.latency)
	b.underruns.Store(0)
	b.overruns.Store(0)
	b.adjustments.Store(0)
}

func nextPowerOf2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
