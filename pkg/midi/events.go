// Package midi provides the note and controller events instruments consume.
package midi

import (
	"fmt"
	"math"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypeControlChange
	EventTypePitchBend
)

// Event is a timestamped MIDI message. Offsets are in samples from the
// start of the current processing block.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	// WithOffset returns a copy of the event at a different offset
	WithOffset(offset int32) Event
	String() string
}

type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) WithOffset(offset int32) Event {
	e.Offset = offset
	return e
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) WithOffset(offset int32) Event {
	e.Offset = offset
	return e
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) WithOffset(offset int32) Event {
	e.Offset = offset
	return e
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

const (
	CCModWheel    uint8 = 1
	CCVolume      uint8 = 7
	CCSustain     uint8 = 64
	CCAllSoundOff uint8 = 120
	CCResetAll    uint8 = 121
	CCAllNotesOff uint8 = 123
)

type PitchBendEvent struct {
	BaseEvent
	Value int16 // -8192 to 8191, 0 is center
}

func (e PitchBendEvent) Type() EventType {
	return EventTypePitchBend
}

func (e PitchBendEvent) WithOffset(offset int32) Event {
	e.Offset = offset
	return e
}

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Value, e.Offset)
}

// ParseBytes decodes a channel voice message. A note-on with velocity 0 is
// reported as a note-off. Unsupported status bytes return an error.
func ParseBytes(status, data1, data2 uint8, offset int32) (Event, error) {
	base := BaseEvent{EventChannel: status & 0x0F, Offset: offset}
	data1 &= 0x7F
	data2 &= 0x7F

	switch status & 0xF0 {
	case 0x80:
		return NoteOffEvent{BaseEvent: base, NoteNumber: data1, Velocity: data2}, nil
	case 0x90:
		if data2 == 0 {
			return NoteOffEvent{BaseEvent: base, NoteNumber: data1}, nil
		}
		return NoteOnEvent{BaseEvent: base, NoteNumber: data1, Velocity: data2}, nil
	case 0xB0:
		return ControlChangeEvent{BaseEvent: base, Controller: data1, Value: data2}, nil
	case 0xE0:
		value := int16(uint16(data2)<<7|uint16(data1)) - 8192
		return PitchBendEvent{BaseEvent: base, Value: value}, nil
	}
	return nil, fmt.Errorf("unsupported midi status 0x%02X", status)
}

// NoteToFrequency converts a MIDI note to Hz in twelve-tone equal temperament.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Exp2((float64(note)-69.0)/12.0)
}
