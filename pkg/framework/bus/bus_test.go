package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstrument(t *testing.T) {
	config := NewInstrument(2, 2)

	assert.Equal(t, int32(1), config.GetBusCount(MediaTypeAudio, DirectionInput))
	assert.Equal(t, int32(1), config.GetBusCount(MediaTypeAudio, DirectionOutput))
	assert.Equal(t, int32(1), config.GetBusCount(MediaTypeEvent, DirectionInput))
	assert.Equal(t, int32(0), config.GetBusCount(MediaTypeEvent, DirectionOutput))

	out := config.GetBusInfo(MediaTypeAudio, DirectionOutput, 0)
	require.NotNil(t, out)
	assert.Equal(t, int32(2), out.ChannelCount)
	assert.Equal(t, TypeMain, out.BusType)
	assert.True(t, out.IsActive)

	midi := config.GetBusInfo(MediaTypeEvent, DirectionInput, 0)
	require.NotNil(t, midi)
	assert.Equal(t, "MIDI In", midi.Name)
	assert.True(t, config.HasEventInput())

	assert.Equal(t, int32(2), config.OutputChannels())
	assert.Equal(t, int32(2), config.InputChannels())
}

func TestActivateBus(t *testing.T) {
	config := NewBuilder().
		WithAudioInput("Main", 2).
		WithAuxInput("Aux", 1).
		WithAudioOutput("Out", 2).
		MustBuild()

	assert.Equal(t, int32(3), config.InputChannels())

	require.NoError(t, config.ActivateBus(MediaTypeAudio, DirectionInput, 1, false))
	assert.Equal(t, int32(2), config.InputChannels())
	assert.False(t, config.GetBusInfo(MediaTypeAudio, DirectionInput, 1).IsActive)

	err := config.ActivateBus(MediaTypeAudio, DirectionInput, 99, false)
	assert.ErrorIs(t, err, ErrBusNotFound)
}

func TestBuilderValidate(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr bool
	}{
		{"valid", NewBuilder().WithAudioOutput("Out", 2), false},
		{"no output", NewBuilder().WithAudioInput("In", 2), true},
		{"zero channels", NewBuilder().WithAudioOutput("Out", 0), true},
		{"too many channels", NewBuilder().WithAudioOutput("Out", MaxChannels+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Panics(t, func() { NewBuilder().MustBuild() })
}
