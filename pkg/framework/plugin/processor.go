// Package plugin defines the plugin metadata and the processor contract hosts drive.
package plugin

import (
	"github.com/r-cha/drumsynth/pkg/framework/bus"
	"github.com/r-cha/drumsynth/pkg/framework/param"
	"github.com/r-cha/drumsynth/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the plugin is created
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// Resetter is implemented by processors that can clear their DSP state
// without being reinitialized.
type Resetter interface {
	Reset()
}
