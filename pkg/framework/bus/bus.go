// Package bus provides VST3 audio bus configuration and management.
package bus

import (
	"errors"
	"fmt"
)

// ErrBusNotFound is returned when a bus lookup has no match.
var ErrBusNotFound = errors.New("bus not found")

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio and event buses
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewInstrument creates the layout of a MIDI-driven instrument: a main audio
// input, a main audio output and one event input.
func NewInstrument(inputs, outputs int32) *Configuration {
	return NewBuilder().
		WithAudioInput("Audio In", inputs).
		WithAudioOutput("Audio Out", outputs).
		WithEventInput("MIDI In").
		MustBuild()
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)

	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}

	return nil
}

// ActivateBus sets a bus active or inactive
func (c *Configuration) ActivateBus(mediaType MediaType, direction Direction, index int32, active bool) error {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return fmt.Errorf("%w: mediaType=%d, direction=%d, index=%d", ErrBusNotFound, mediaType, direction, index)
	}
	info.IsActive = active
	return nil
}

// OutputChannels returns the channel count of the active audio output buses
func (c *Configuration) OutputChannels() int32 {
	return c.activeChannels(DirectionOutput)
}

// InputChannels returns the channel count of the active audio input buses
func (c *Configuration) InputChannels() int32 {
	return c.activeChannels(DirectionInput)
}

func (c *Configuration) activeChannels(direction Direction) int32 {
	total := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction && bus.IsActive {
			total += bus.ChannelCount
		}
	}
	return total
}

// HasEventInput reports whether an active event input bus exists
func (c *Configuration) HasEventInput() bool {
	for _, bus := range c.eventBuses {
		if bus.Direction == DirectionInput && bus.IsActive {
			return true
		}
	}
	return false
}
