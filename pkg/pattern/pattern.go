// Package pattern reads drum patterns: hits placed on a beat grid at a tempo.
package pattern

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/r-cha/drumsynth/pkg/midi"
)

// ErrInvalidPattern is returned for patterns that cannot be rendered.
var ErrInvalidPattern = errors.New("invalid pattern")

// Defaults applied to fields a pattern leaves out
const (
	DefaultTempo       = 120.0
	DefaultNote        = 36
	DefaultVelocity    = 100
	DefaultLengthBeats = 0.25
)

// Hit is a single note on the grid
type Hit struct {
	Beat        float64 `yaml:"beat"`
	Note        *int    `yaml:"note,omitempty"`
	Velocity    *int    `yaml:"velocity,omitempty"`
	LengthBeats float64 `yaml:"length_beats,omitempty"`
}

// Pattern is a tempo, an optional explicit length and a list of hits
type Pattern struct {
	Tempo       float64 `yaml:"tempo,omitempty"`
	LengthBeats float64 `yaml:"length_beats,omitempty"`
	Hits        []Hit   `yaml:"hits"`
}

// Single returns a pattern with one default hit on beat zero
func Single() *Pattern {
	p := &Pattern{Hits: []Hit{{}}}
	p.applyDefaults()
	return p
}

// Parse decodes and validates a YAML pattern
func Parse(data []byte) (*Pattern, error) {
	var p Pattern
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a pattern file
func Load(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Pattern) applyDefaults() {
	if p.Tempo == 0 {
		p.Tempo = DefaultTempo
	}
	for i := range p.Hits {
		h := &p.Hits[i]
		if h.Note == nil {
			n := DefaultNote
			h.Note = &n
		}
		if h.Velocity == nil {
			v := DefaultVelocity
			h.Velocity = &v
		}
		if h.LengthBeats == 0 {
			h.LengthBeats = DefaultLengthBeats
		}
	}
}

// Validate checks tempo, beats, notes and velocities
func (p *Pattern) Validate() error {
	var errs []error
	if p.Tempo <= 0 {
		errs = append(errs, fmt.Errorf("tempo %v must be positive", p.Tempo))
	}
	if p.LengthBeats < 0 {
		errs = append(errs, fmt.Errorf("length_beats %v is negative", p.LengthBeats))
	}

	for i, h := range p.Hits {
		if h.Beat < 0 {
			errs = append(errs, fmt.Errorf("hit %d: beat %v is negative", i, h.Beat))
		}
		if h.LengthBeats < 0 {
			errs = append(errs, fmt.Errorf("hit %d: length_beats %v is negative", i, h.LengthBeats))
		}
		if h.Note != nil && (*h.Note < 0 || *h.Note > 127) {
			errs = append(errs, fmt.Errorf("hit %d: note %d out of range", i, *h.Note))
		}
		if h.Velocity != nil && (*h.Velocity < 1 || *h.Velocity > 127) {
			errs = append(errs, fmt.Errorf("hit %d: velocity %d out of range", i, *h.Velocity))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPattern, errors.Join(errs...))
	}
	return nil
}

// SamplesPerBeat converts the tempo to samples
func (p *Pattern) SamplesPerBeat(sampleRate float64) float64 {
	return sampleRate * 60 / p.Tempo
}

func (p *Pattern) beatToSample(beat, sampleRate float64) int32 {
	return int32(math.Round(beat * p.SamplesPerBeat(sampleRate)))
}

// Events returns a note-on at each hit and a note-off after its length,
// ordered by sample offset. At equal offsets note-offs come first so a
// retrigger is not cut by the previous hit's release.
func (p *Pattern) Events(sampleRate float64) []midi.Event {
	events := make([]midi.Event, 0, len(p.Hits)*2)
	for _, h := range p.Hits {
		note := uint8(*h.Note)
		on := p.beatToSample(h.Beat, sampleRate)
		off := p.beatToSample(h.Beat+h.LengthBeats, sampleRate)

		events = append(events,
			midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: on}, NoteNumber: note, Velocity: uint8(*h.Velocity)},
			midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: off}, NoteNumber: note},
		)
	}

	sort.SliceStable(events, func(i, j int) bool {
		oi, oj := events[i].SampleOffset(), events[j].SampleOffset()
		if oi != oj {
			return oi < oj
		}
		return isNoteOff(events[i]) && !isNoteOff(events[j])
	})
	return events
}

// EndBeat is the explicit length, or the end of the last hit
func (p *Pattern) EndBeat() float64 {
	end := p.LengthBeats
	for _, h := range p.Hits {
		end = max(end, h.Beat+h.LengthBeats)
	}
	return end
}

// DurationSamples is the pattern length plus tail samples of ring-out
func (p *Pattern) DurationSamples(sampleRate float64, tail int) int {
	return int(p.beatToSample(p.EndBeat(), sampleRate)) + max(tail, 0)
}

func isNoteOff(e midi.Event) bool {
	_, ok := e.(midi.NoteOffEvent)
	return ok
}
