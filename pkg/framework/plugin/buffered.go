package plugin

import (
	"sync/atomic"

	"github.com/r-cha/drumsynth/pkg/dsp/buffer"
	"github.com/r-cha/drumsynth/pkg/framework/bus"
	"github.com/r-cha/drumsynth/pkg/framework/param"
	"github.com/r-cha/drumsynth/pkg/framework/process"
)

// BufferedProcessor wraps a Processor with write-ahead buffering for GC protection
type BufferedProcessor struct {
	wrapped     Processor
	buffers     []*buffer.WriteAheadBuffer
	numChannels int

	latencySamples int32
	active         atomic.Bool
}

// NewBufferedProcessor creates a new buffered processor wrapper
func NewBufferedProcessor(p Processor, numChannels int) *BufferedProcessor {
	return &BufferedProcessor{
		wrapped:     p,
		numChannels: numChannels,
	}
}

// Initialize sets up the wrapped processor and one buffer per channel,
// each large enough to take a full block on top of the write-ahead
func (bp *BufferedProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if err := bp.wrapped.Initialize(sampleRate, maxBlockSize); err != nil {
		return err
	}

	bp.buffers = make([]*buffer.WriteAheadBuffer, bp.numChannels)
	for i := range bp.buffers {
		bp.buffers[i] = buffer.NewWithLatencyAndBlock(sampleRate, buffer.DefaultLatency, int(maxBlockSize))
	}
	if bp.numChannels > 0 {
		bp.latencySamples = int32(bp.buffers[0].Latency())
	}
	return nil
}

// ProcessAudio runs the wrapped processor and delays its output by the buffer latency
func (bp *BufferedProcessor) ProcessAudio(ctx *process.Context) {
	numSamples := ctx.NumSamples()

	bp.wrapped.ProcessAudio(ctx)

	for ch := 0; ch < len(bp.buffers) && ch < len(ctx.Output); ch++ {
		// Overruns are counted by the buffer
		_ = bp.buffers[ch].Write(ctx.Output[ch][:numSamples])
	}

	for ch := 0; ch < len(bp.buffers) && ch < len(ctx.Output); ch++ {
		bp.buffers[ch].Read(ctx.Output[ch][:numSamples])
	}
}

// GetParameters returns the wrapped processor's parameters
func (bp *BufferedProcessor) GetParameters() *param.Registry {
	return bp.wrapped.GetParameters()
}

// GetBuses returns the wrapped processor's bus configuration
func (bp *BufferedProcessor) GetBuses() *bus.Configuration {
	return bp.wrapped.GetBuses()
}

// SetActive is called when processing starts/stops
func (bp *BufferedProcessor) SetActive(active bool) error {
	bp.active.Store(active)
	if !active {
		bp.resetBuffers()
	}
	return bp.wrapped.SetActive(active)
}

// IsActive reports the last SetActive state
func (bp *BufferedProcessor) IsActive() bool {
	return bp.active.Load()
}

// Reset clears the buffers and resets the wrapped processor if it can
func (bp *BufferedProcessor) Reset() {
	bp.resetBuffers()
	if r, ok := bp.wrapped.(Resetter); ok {
		r.Reset()
	}
}

func (bp *BufferedProcessor) resetBuffers() {
	for _, b := range bp.buffers {
		b.Reset()
	}
}

// GetLatencySamples returns the buffer latency plus the wrapped processor's latency
func (bp *BufferedProcessor) GetLatencySamples() int32 {
	return bp.latencySamples + bp.wrapped.GetLatencySamples()
}

// GetTailSamples returns the wrapped processor's tail length
func (bp *BufferedProcessor) GetTailSamples() int32 {
	return bp.wrapped.GetTailSamples()
}

// GetBufferHealth returns underruns and overruns summed over all channels
// since the last reset
func (bp *BufferedProcessor) GetBufferHealth() (underruns, overruns uint64) {
	for _, b := range bp.buffers {
		h := b.Health()
		underruns += h.Underruns
		overruns += h.Overruns
	}
	return underruns, overruns
}
