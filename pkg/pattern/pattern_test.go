package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-cha/drumsynth/pkg/midi"
)

const fourOnFloor = `
tempo: 120
length_beats: 4
hits:
  - beat: 0
  - beat: 1
    velocity: 80
  - beat: 2
    note: 38
    length_beats: 0.5
  - beat: 3
`

func TestParseAppliesDefaults(t *testing.T) {
	p, err := Parse([]byte(fourOnFloor))
	require.NoError(t, err)

	assert.Equal(t, 120.0, p.Tempo)
	require.Len(t, p.Hits, 4)
	assert.Equal(t, DefaultNote, *p.Hits[0].Note)
	assert.Equal(t, DefaultVelocity, *p.Hits[0].Velocity)
	assert.Equal(t, 80, *p.Hits[1].Velocity)
	assert.Equal(t, 38, *p.Hits[2].Note)
	assert.Equal(t, DefaultLengthBeats, p.Hits[3].LengthBeats)

	empty, err := Parse([]byte("hits: []"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTempo, empty.Tempo)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative tempo", "tempo: -1\nhits: [{beat: 0}]"},
		{"negative beat", "hits: [{beat: -1}]"},
		{"note too high", "hits: [{beat: 0, note: 128}]"},
		{"zero velocity", "hits: [{beat: 0, velocity: 0}]"},
		{"unknown field", "hits: [{beat: 0, pitch: 3}]"},
		{"not yaml", "hits: [beat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestEvents(t *testing.T) {
	p, err := Parse([]byte(fourOnFloor))
	require.NoError(t, err)

	// 120 bpm at 1000 Hz is 500 samples per beat
	events := p.Events(1000)
	require.Len(t, events, 8)

	offsets := make([]int32, len(events))
	for i, e := range events {
		offsets[i] = e.SampleOffset()
	}
	assert.Equal(t, []int32{0, 125, 500, 625, 1000, 1250, 1500, 1625}, offsets)

	on := events[2].(midi.NoteOnEvent)
	assert.Equal(t, uint8(36), on.NoteNumber)
	assert.Equal(t, uint8(80), on.Velocity)

	snare := events[4].(midi.NoteOnEvent)
	assert.Equal(t, uint8(38), snare.NoteNumber)
	assert.IsType(t, midi.NoteOffEvent{}, events[5])
}

func TestEventsNoteOffBeforeRetrigger(t *testing.T) {
	p, err := Parse([]byte("hits: [{beat: 1, length_beats: 1}, {beat: 0, length_beats: 1}]"))
	require.NoError(t, err)

	events := p.Events(1000)
	require.Len(t, events, 4)
	assert.IsType(t, midi.NoteOnEvent{}, events[0])
	assert.Equal(t, int32(500), events[1].SampleOffset())
	assert.IsType(t, midi.NoteOffEvent{}, events[1])
	assert.IsType(t, midi.NoteOnEvent{}, events[2])
}

func TestDurationSamples(t *testing.T) {
	p, err := Parse([]byte(fourOnFloor))
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.EndBeat())
	assert.Equal(t, 2000+300, p.DurationSamples(1000, 300))

	long, err := Parse([]byte("length_beats: 1\nhits: [{beat: 2}]"))
	require.NoError(t, err)
	assert.Equal(t, 2.25, long.EndBeat())
	assert.Equal(t, 1125, long.DurationSamples(1000, -5))
}

func TestSingle(t *testing.T) {
	p := Single()
	require.NoError(t, p.Validate())
	events := p.Events(44100)
	require.Len(t, events, 2)
	assert.Equal(t, int32(0), events[0].SampleOffset())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fourOnFloor), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Hits, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
