// Package host drives plugin processors outside a DAW: block by block, with
// sample-accurate MIDI, collecting the output for analysis or export.
package host

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/r-cha/drumsynth/pkg/framework/debug"
	"github.com/r-cha/drumsynth/pkg/framework/plugin"
	"github.com/r-cha/drumsynth/pkg/framework/process"
	"github.com/r-cha/drumsynth/pkg/midi"
)

// ErrInvalidSettings is returned when the host cannot run with its settings.
var ErrInvalidSettings = errors.New("invalid host settings")

// blockSection is the profiler section timing each ProcessAudio call
const blockSection = "process"

// Offline renders a processor as fast as possible
type Offline struct {
	SampleRate float64
	BlockSize  int
	Channels   int

	// Buffered wraps the processor in a write-ahead buffer; its latency is
	// trimmed from the start of the output.
	Buffered bool

	Logger *zap.Logger

	profiler *debug.Profiler
}

// NewOffline creates an offline host
func NewOffline(sampleRate float64, blockSize, channels int, logger *zap.Logger) *Offline {
	if logger == nil {
		logger = debug.NewNopLogger()
	}
	return &Offline{
		SampleRate: sampleRate,
		BlockSize:  blockSize,
		Channels:   channels,
		Logger:     logger,
		profiler:   debug.NewProfiler(1024),
	}
}

// Profiler returns the per-block timing statistics
func (h *Offline) Profiler() *debug.Profiler {
	if h.profiler == nil {
		h.profiler = debug.NewProfiler(1024)
	}
	return h.profiler
}

func (h *Offline) validate() error {
	switch {
	case h.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %v", ErrInvalidSettings, h.SampleRate)
	case h.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidSettings, h.BlockSize)
	case h.Channels < 1:
		return fmt.Errorf("%w: %d channels", ErrInvalidSettings, h.Channels)
	}
	return nil
}

// Render runs proc for totalSamples samples. Event offsets are absolute
// sample positions from the start of the render.
func (h *Offline) Render(ctx context.Context, proc plugin.Processor, events []midi.Event, totalSamples int) (*Buffer, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if totalSamples < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidSettings, totalSamples)
	}

	log := h.logger()
	profiler := h.Profiler()

	if h.Buffered {
		proc = plugin.NewBufferedProcessor(proc, h.Channels)
	}
	if err := proc.Initialize(h.SampleRate, int32(h.BlockSize)); err != nil {
		return nil, fmt.Errorf("initialize processor: %w", err)
	}
	if err := proc.SetActive(true); err != nil {
		return nil, fmt.Errorf("activate processor: %w", err)
	}
	defer func() {
		if err := proc.SetActive(false); err != nil {
			log.Warn("deactivate processor", zap.Error(err))
		}
	}()

	inputs := 0
	if buses := proc.GetBuses(); buses != nil {
		inputs = int(buses.InputChannels())
		if len(events) > 0 && !buses.HasEventInput() {
			log.Warn("processor has no event input, events will be ignored", zap.Int("events", len(events)))
		}
		if ch := int(buses.OutputChannels()); ch != h.Channels {
			log.Debug("channel count differs from the main output bus", zap.Int("host", h.Channels), zap.Int("bus", ch))
		}
	}

	latency := int(proc.GetLatencySamples())
	total := totalSamples + latency

	queue := midi.NewEventQueue()
	queue.AddMultiple(events)

	pctx := process.NewContext(h.BlockSize)
	pctx.SampleRate = h.SampleRate
	scratch := make([][]float32, h.Channels)
	for ch := range scratch {
		scratch[ch] = make([]float32, h.BlockSize)
	}
	pctx.Output = make([][]float32, h.Channels)

	// Audio inputs are fed silence
	silence := make([][]float32, inputs)
	for ch := range silence {
		silence[ch] = make([]float32, h.BlockSize)
	}
	pctx.Input = make([][]float32, inputs)

	out := NewBuffer(h.Channels, totalSamples, h.SampleRate)
	blocks := 0

	log.Debug("render started",
		zap.Int("samples", totalSamples),
		zap.Int("latency", latency),
		zap.Int("events", len(events)),
	)

	for pos := 0; pos < total; pos += h.BlockSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render cancelled at sample %d: %w", pos, err)
		}

		n := min(h.BlockSize, total-pos)
		for ch := range pctx.Output {
			pctx.Output[ch] = scratch[ch][:n]
		}
		for ch := range pctx.Input {
			pctx.Input[ch] = silence[ch][:n]
		}
		pctx.Clear()

		for _, e := range queue.GetEventsInRange(int32(pos), int32(pos+n)) {
			pctx.AddInputEvent(e.WithOffset(e.SampleOffset() - int32(pos)))
		}

		stop := profiler.Start(blockSection)
		proc.ProcessAudio(pctx)
		stop()

		pctx.ClearInputEvents()
		queue.RemoveProcessedEvents(int32(pos + n))
		blocks++

		for ch, data := range pctx.Output {
			for i, v := range data {
				if dst := pos + i - latency; dst >= 0 && dst < totalSamples {
					out.Channels[ch][dst] = v
				}
			}
		}
	}

	if dropped := queue.Size(); dropped > 0 {
		log.Warn("events after the end of the render were dropped", zap.Int("count", dropped))
	}

	if bp, ok := proc.(*plugin.BufferedProcessor); ok {
		underruns, overruns := bp.GetBufferHealth()
		if underruns > 0 || overruns > 0 {
			log.Warn("write-ahead buffer trouble", zap.Uint64("underruns", underruns), zap.Uint64("overruns", overruns))
		}
	}

	if m, ok := profiler.Get(blockSection); ok {
		log.Debug("render finished",
			zap.Int("blocks", blocks),
			zap.Duration("avg_block", m.Average()),
			zap.Duration("max_block", m.Max),
			zap.Float64("cpu_load", m.CPULoad(h.SampleRate, h.BlockSize)),
		)
	}

	return out, nil
}

func (h *Offline) logger() *zap.Logger {
	if h.Logger == nil {
		return debug.NewNopLogger()
	}
	return h.Logger
}
