// Package process provides audio processing context and utilities for VST3 audio processing.
package process

import (
	"github.com/r-cha/drumsynth/pkg/midi"
)

// DefaultEventCapacity is the number of input events a context holds before it grows.
const DefaultEventCapacity = 512

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Pre-allocated work buffer
	workBuffer []float32

	// Input events for the current block, sorted by sample offset
	inputEvents []midi.Event
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(maxBlockSize int) *Context {
	return &Context{
		workBuffer:  make([]float32, maxBlockSize),
		inputEvents: make([]midi.Event, 0, DefaultEventCapacity),
	}
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	return 0
}

// WorkBuffer returns a slice of the pre-allocated work buffer
// sized to the current block size - no allocation!
// It is shorter than the block when the block exceeds maxBlockSize.
func (c *Context) WorkBuffer() []float32 {
	n := c.NumSamples()
	if n > len(c.workBuffer) {
		n = len(c.workBuffer)
	}
	return c.workBuffer[:n]
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// FillChannels copies src into every output channel
func (c *Context) FillChannels(src []float32) {
	for ch := range c.Output {
		copy(c.Output[ch], src)
	}
}

// AddInputEvent inserts an event keeping offset order. Events with equal
// offsets keep their arrival order.
func (c *Context) AddInputEvent(event midi.Event) {
	c.inputEvents = append(c.inputEvents, event)
	for i := len(c.inputEvents) - 1; i > 0; i-- {
		if c.inputEvents[i-1].SampleOffset() <= c.inputEvents[i].SampleOffset() {
			break
		}
		c.inputEvents[i-1], c.inputEvents[i] = c.inputEvents[i], c.inputEvents[i-1]
	}
}

// GetAllInputEvents returns the block's events. The slice is reused by the next block.
func (c *Context) GetAllInputEvents() []midi.Event {
	return c.inputEvents
}

// ClearInputEvents drops all input events, keeping capacity
func (c *Context) ClearInputEvents() {
	clear(c.inputEvents)
	c.inputEvents = c.inputEvents[:0]
}
