// Package delay provides delay line implementations for audio effects
package delay

// MaxDelay is the default ring length in samples.
const MaxDelay = 4096

// Ring is a fixed-length circular buffer read at whole-sample delays.
type Ring struct {
	buffer   []float32
	writePos int
}

// NewRing creates a ring of the given length.
func NewRing(size int) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{buffer: make([]float32, size)}
}

// Size returns the ring length.
func (r *Ring) Size() int {
	return len(r.buffer)
}

// Read returns the sample delaySamples positions behind the write head.
// A delay of 1 is the latest write; 0 wraps to the oldest sample.
// The delay is clamped to [0, Size()-1].
func (r *Ring) Read(delaySamples int) float32 {
	size := len(r.buffer)
	delaySamples = max(0, min(delaySamples, size-1))
	return r.buffer[(r.writePos+size-delaySamples)%size]
}

// Write stores a sample and advances the write position.
func (r *Ring) Write(sample float32) {
	r.buffer[r.writePos] = sample
	r.writePos++
	if r.writePos == len(r.buffer) {
		r.writePos = 0
	}
}

// Reset clears the buffer.
func (r *Ring) Reset() {
	clear(r.buffer)
	r.writePos = 0
}
