package bus

import "fmt"

// MaxChannels is the largest channel count a single bus may carry
const MaxChannels = 32

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) add(mediaType MediaType, direction Direction, busType Type, name string, channels int32) *Builder {
	info := Info{
		MediaType:    mediaType,
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      busType,
		IsActive:     true,
	}
	if mediaType == MediaTypeEvent {
		b.config.eventBuses = append(b.config.eventBuses, info)
	} else {
		b.config.audioBuses = append(b.config.audioBuses, info)
	}
	return b
}

// WithAudioInput adds a main audio input bus
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.add(MediaTypeAudio, DirectionInput, TypeMain, name, channels)
}

// WithAudioOutput adds a main audio output bus
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.add(MediaTypeAudio, DirectionOutput, TypeMain, name, channels)
}

// WithAuxInput adds an auxiliary audio input bus
func (b *Builder) WithAuxInput(name string, channels int32) *Builder {
	return b.add(MediaTypeAudio, DirectionInput, TypeAux, name, channels)
}

// WithEventInput adds a MIDI input bus
func (b *Builder) WithEventInput(name string) *Builder {
	return b.add(MediaTypeEvent, DirectionInput, TypeMain, name, 1)
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	hasMainOutput := false
	for _, bus := range b.config.audioBuses {
		if bus.Direction == DirectionOutput && bus.BusType == TypeMain {
			hasMainOutput = true
			break
		}
	}
	if !hasMainOutput {
		return fmt.Errorf("configuration must have at least one main audio output bus")
	}

	for _, bus := range b.config.audioBuses {
		if bus.ChannelCount <= 0 {
			return fmt.Errorf("invalid channel count %d for bus %s", bus.ChannelCount, bus.Name)
		}
		if bus.ChannelCount > MaxChannels {
			return fmt.Errorf("channel count %d exceeds maximum of %d for bus %s", bus.ChannelCount, MaxChannels, bus.Name)
		}
	}

	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
