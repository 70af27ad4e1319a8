// Package drumsynth implements a percussive instrument: a noise impact and a
// noise snare layer, both exciting a Karplus-Strong resonator.
package drumsynth

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/r-cha/drumsynth/pkg/dsp/delay"
	"github.com/r-cha/drumsynth/pkg/dsp/envelope"
	"github.com/r-cha/drumsynth/pkg/dsp/filter"
	"github.com/r-cha/drumsynth/pkg/dsp/gain"
	"github.com/r-cha/drumsynth/pkg/dsp/utility"
	"github.com/r-cha/drumsynth/pkg/framework/bus"
	"github.com/r-cha/drumsynth/pkg/framework/param"
	"github.com/r-cha/drumsynth/pkg/framework/process"
	"github.com/r-cha/drumsynth/pkg/framework/state"
	"github.com/r-cha/drumsynth/pkg/midi"
)

// GainSmoothingMs is the master gain ramp time.
const GainSmoothingMs = 50.0

// ringOutDB is the level the resonator tail is measured down to.
const ringOutDB = -60.0

// Processor is the drum synth audio processor
type Processor struct {
	params *param.Registry
	buses  *bus.Configuration
	state  *state.Manager

	// Lock-free handles into the registry, indexed by parameter ID
	values [numParams]*param.Parameter

	sampleRate float64

	impactEnv *envelope.AHDSR
	snareEnv  *envelope.AHDSR
	impactEQ  *filter.PeakEQ
	snareEQ   *filter.PeakEQ
	resEQ     *filter.PeakEQ
	damping   *filter.OnePole
	ring      *delay.Ring
	noise     *utility.NoiseGenerator
	gain      *param.Smoother

	// Mono block, used when the context's work buffer is too short
	scratch []float32

	// Per-block parameter snapshot
	impactLevel float32
	snareLevel  float32
	resLevel    float32
	feedback    float32
	tension     int

	note    uint8
	playing atomic.Bool
}

// Option configures a Processor
type Option func(*Processor)

// WithSeed makes the noise source reproducible
func WithSeed(seed int64) Option {
	return func(p *Processor) {
		p.noise = utility.NewSeededNoiseGenerator(seed)
	}
}

// New creates a processor with default parameter values
func New(opts ...Option) *Processor {
	p := &Processor{
		params:     param.NewRegistry(),
		buses:      bus.NewInstrument(2, 2),
		sampleRate: 44100,
		impactEnv:  envelope.New(44100),
		snareEnv:   envelope.New(44100),
		impactEQ:   filter.NewPeakEQ(),
		snareEQ:    filter.NewPeakEQ(),
		resEQ:      filter.NewPeakEQ(),
		damping:    filter.NewOnePole(),
		ring:       delay.NewRing(delay.MaxDelay),
		gain:       param.NewSmoother(param.LogarithmicSmoothing, 0),
	}

	if err := registerParameters(p.params); err != nil {
		// Static table; a failure here is a programming error
		panic(err)
	}
	for _, prm := range p.params.All() {
		p.values[prm.ID] = prm
	}
	p.state = state.NewManager(p.params)

	for _, opt := range opts {
		opt(p)
	}
	if p.noise == nil {
		p.noise = utility.NewNoiseGenerator()
	}

	p.gain.SetTime(p.sampleRate, GainSmoothingMs)
	p.gain.Reset(gain.DbToGain(p.plain(ParamGain)))
	return p
}

func (p *Processor) plain(id uint32) float64 {
	return p.values[id].GetPlainValue()
}

// Initialize is called when the plugin is created
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	p.scratch = make([]float32, max(maxBlockSize, 0))
	p.sampleRate = sampleRate
	p.impactEnv.SetSampleRate(sampleRate)
	p.snareEnv.SetSampleRate(sampleRate)

	p.gain.SetTime(sampleRate, GainSmoothingMs)
	p.gain.Reset(gain.DbToGain(p.plain(ParamGain)))

	p.configureFilters()
	return nil
}

// Reset returns all DSP state to silence
func (p *Processor) Reset() {
	p.impactEnv.Reset()
	p.snareEnv.Reset()
	p.impactEQ.Reset()
	p.snareEQ.Reset()
	p.resEQ.Reset()
	p.damping.Reset()
	p.ring.Reset()
	p.note = 0
	p.playing.Store(false)
	p.gain.Reset(gain.DbToGain(p.plain(ParamGain)))
}

// SetActive is called when processing starts/stops. Deactivating resets.
func (p *Processor) SetActive(active bool) error {
	if !active {
		p.Reset()
	}
	return nil
}

// GetParameters returns the parameter registry
func (p *Processor) GetParameters() *param.Registry {
	return p.params
}

// GetBuses returns the bus configuration
func (p *Processor) GetBuses() *bus.Configuration {
	return p.buses
}

// SaveState writes the parameter state a host stores with a project
func (p *Processor) SaveState(w io.Writer) error {
	return p.state.Save(w)
}

// LoadState restores parameters written by SaveState
func (p *Processor) LoadState(r io.Reader) error {
	return p.state.Load(r)
}

// GetLatencySamples returns the processing latency
func (p *Processor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples estimates how long output continues after the last note-off:
// the longer envelope release plus the resonator ringing down by 60 dB.
func (p *Processor) GetTailSamples() int32 {
	release := max(
		envelope.ReleaseSamples(p.plain(ParamImpactRelease), p.sampleRate),
		envelope.ReleaseSamples(p.plain(ParamSnareDecay)*0.5, p.sampleRate),
	)

	d := math.Round(p.plain(ParamTension))
	fb := math.Abs(p.plain(ParamFeedback))
	ringOut := 0.0
	if fb > 0 && fb < 1 {
		ringOut = d * math.Log(gain.DbToGain(ringOutDB)) / math.Log(fb)
	}

	return int32(release + int(math.Ceil(ringOut)))
}

// Playing reports whether either envelope is still running
func (p *Processor) Playing() bool {
	return p.playing.Load()
}

// configureFilters loads the EQ and damping settings
func (p *Processor) configureFilters() {
	sr := p.sampleRate
	p.impactEQ.Configure(p.plain(ParamImpactEQFreq), p.plain(ParamImpactEQGain), p.plain(ParamImpactEQQ), sr)
	p.snareEQ.Configure(p.plain(ParamSnareEQFreq), p.plain(ParamSnareEQGain), p.plain(ParamSnareEQQ), sr)
	p.resEQ.Configure(p.plain(ParamResonatorEQFreq), p.plain(ParamResonatorEQGain), p.plain(ParamResonatorEQQ), sr)
	p.damping.SetCutoff(1-p.plain(ParamDamping), true)
}

// loadBlockParameters snapshots the parameters used for one block
func (p *Processor) loadBlockParameters() {
	p.impactEnv.SetParameters(
		p.plain(ParamImpactAttack),
		p.plain(ParamImpactDecay),
		0,
		p.plain(ParamImpactRelease),
		p.plain(ParamImpactHold),
	)

	snareDecay := p.plain(ParamSnareDecay)
	p.snareEnv.SetParameters(p.plain(ParamSnareAttack), snareDecay, 0, snareDecay*0.5, 0)

	p.impactLevel = float32(p.plain(ParamImpactLevel))
	p.snareLevel = float32(p.plain(ParamSnareLevel))
	p.resLevel = float32(p.plain(ParamResonatorLevel))
	p.feedback = float32(p.plain(ParamFeedback))
	p.tension = min(int(p.plain(ParamTension)), delay.MaxDelay-1)

	p.configureFilters()
	p.gain.SetTarget(gain.DbToGain(p.plain(ParamGain)))
}

// ProcessAudio renders one block - no allocations, no locks
func (p *Processor) ProcessAudio(ctx *process.Context) {
	numSamples := ctx.NumSamples()
	if numSamples == 0 {
		return
	}

	p.loadBlockParameters()

	mono := ctx.WorkBuffer()
	if len(mono) < numSamples {
		if len(p.scratch) < numSamples {
			p.scratch = make([]float32, numSamples)
		}
		mono = p.scratch[:numSamples]
	}

	events := ctx.GetAllInputEvents()
	next := 0

	for i := range mono {
		for next < len(events) && events[next].SampleOffset() <= int32(i) {
			p.handleEvent(events[next])
			next++
		}
		mono[i] = p.tick()
	}
	ctx.FillChannels(mono)

	// Events stamped past the block still count
	for ; next < len(events); next++ {
		p.handleEvent(events[next])
	}

	p.playing.Store(p.impactEnv.IsActive() || p.snareEnv.IsActive())
}

func (p *Processor) handleEvent(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		if e.Velocity == 0 {
			p.noteOff(e.NoteNumber)
			return
		}
		p.note = e.NoteNumber
		p.impactEnv.NoteOn()
		p.snareEnv.NoteOn()
		p.playing.Store(true)

	case midi.NoteOffEvent:
		p.noteOff(e.NoteNumber)

	case midi.ControlChangeEvent:
		if e.Controller == midi.CCAllNotesOff {
			p.impactEnv.NoteOff()
			p.snareEnv.NoteOff()
		}
	}
}

// noteOff releases only the note that last triggered
func (p *Processor) noteOff(note uint8) {
	if note != p.note {
		return
	}
	p.impactEnv.NoteOff()
	p.snareEnv.NoteOff()
}

// tick renders one mono sample
func (p *Processor) tick() float32 {
	impact := p.impactEQ.Process(p.noise.Next() * p.impactEnv.Next() * p.impactLevel)
	snare := p.snareEQ.Process(p.noise.Next() * p.snareEnv.Next() * p.snareLevel)

	delayed := p.ring.Read(p.tension)
	in := impact + snare + p.damping.Process(delayed)*p.feedback
	p.ring.Write(in)
	resonance := p.resEQ.Process(in * p.resLevel)

	return (impact + resonance) * float32(p.gain.Next())
}
