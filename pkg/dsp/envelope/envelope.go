// Package envelope provides envelope generators for audio synthesis
package envelope

import "math"

// Stage represents the current envelope stage
type Stage int

const (
	// StageIdle represents envelope idle state
	StageIdle Stage = iota
	// StageAttack represents envelope attack phase
	StageAttack
	// StageHold keeps the envelope at full level for a fixed time
	StageHold
	// StageDecay represents envelope decay phase
	StageDecay
	// StageSustain represents envelope sustain phase
	StageSustain
	// StageRelease represents envelope release phase
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageHold:
		return "hold"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// releaseFloor is the level at which release ends.
const releaseFloor = 0.001

// AHDSR is a linear Attack-Hold-Decay-Sustain-Release envelope.
// With a sustain level of 0 it ends at the end of decay.
type AHDSR struct {
	sampleRate float64

	// Parameters (seconds for A, H, D, R and 0-1 for S)
	attack  float64
	hold    float64
	decay   float64
	sustain float64
	release float64

	stage       Stage
	level       float64
	holdCounter int
}

// New creates an idle envelope
func New(sampleRate float64) *AHDSR {
	return &AHDSR{
		sampleRate: sampleRate,
		attack:     0.01,
		decay:      0.1,
		release:    0.1,
	}
}

// SetSampleRate changes the rate the times are measured against
func (e *AHDSR) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
}

// SetParameters sets all times (seconds) and the sustain level
func (e *AHDSR) SetParameters(attack, decay, sustain, release, hold float64) {
	e.attack = max(0, attack)
	e.decay = max(0, decay)
	e.sustain = max(0, min(1, sustain))
	e.release = max(0, release)
	e.hold = max(0, hold)
}

// NoteOn restarts the envelope from zero
func (e *AHDSR) NoteOn() {
	e.stage = StageAttack
	e.level = 0
	e.holdCounter = int(e.hold * e.sampleRate)
}

// NoteOff starts the release stage unless idle
func (e *AHDSR) NoteOff() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// Reset immediately returns the envelope to idle
func (e *AHDSR) Reset() {
	e.stage = StageIdle
	e.level = 0
	e.holdCounter = 0
}

// IsActive returns true if the envelope is generating output
func (e *AHDSR) IsActive() bool {
	return e.stage != StageIdle
}

// Stage returns the current envelope stage
func (e *AHDSR) Stage() Stage {
	return e.stage
}

// Level returns the last output without advancing
func (e *AHDSR) Level() float64 {
	return e.level
}

// steps converts a time to a sample count of at least one
func (e *AHDSR) steps(seconds float64) float64 {
	return max(seconds*e.sampleRate, 1)
}

// Next advances one sample and returns the level
func (e *AHDSR) Next() float32 {
	switch e.stage {
	case StageAttack:
		e.level += 1 / e.steps(e.attack)
		if e.level >= 1 {
			e.level = 1
			if e.hold > 0 {
				e.stage = StageHold
			} else {
				e.stage = StageDecay
			}
		}

	case StageHold:
		e.level = 1
		if e.holdCounter > 0 {
			e.holdCounter--
		} else {
			e.stage = StageDecay
		}

	case StageDecay:
		e.level -= (1 - e.sustain) / e.steps(e.decay)
		if e.level <= e.sustain {
			e.level = e.sustain
			if e.sustain == 0 {
				e.stage = StageIdle
			} else {
				e.stage = StageSustain
			}
		}

	case StageSustain:
		e.level = e.sustain

	case StageRelease:
		e.level -= e.level / e.steps(e.release)
		if e.level <= releaseFloor {
			e.level = 0
			e.stage = StageIdle
		}

	case StageIdle:
		e.level = 0
	}

	return float32(e.level)
}

// ReleaseSamples returns the number of samples a release of the given
// length takes to fall from full level to the idle threshold.
func ReleaseSamples(release, sampleRate float64) int {
	if release <= 0 || sampleRate <= 0 {
		return 0
	}
	// level *= (1 - 1/n) per sample
	n := max(release*sampleRate, 1)
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log(releaseFloor) / math.Log(1-1/n)))
}
