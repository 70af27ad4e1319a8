package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-cha/drumsynth/pkg/framework/bus"
	"github.com/r-cha/drumsynth/pkg/framework/param"
	"github.com/r-cha/drumsynth/pkg/framework/process"
)

// constProcessor writes a ramp so delays are easy to see
type constProcessor struct {
	params  *param.Registry
	buses   *bus.Configuration
	counter float32
	resets  int
	active  bool
}

func newConstProcessor() *constProcessor {
	return &constProcessor{params: param.NewRegistry(), buses: bus.NewInstrument(2, 2)}
}

func (p *constProcessor) Initialize(float64, int32) error { return nil }
func (p *constProcessor) ProcessAudio(ctx *process.Context) {
	for i := 0; i < ctx.NumSamples(); i++ {
		p.counter++
		for ch := range ctx.Output {
			ctx.Output[ch][i] = p.counter
		}
	}
}
func (p *constProcessor) GetParameters() *param.Registry { return p.params }
func (p *constProcessor) GetBuses() *bus.Configuration { return p.buses }
func (p *constProcessor) SetActive(active bool) error { p.active = active; return nil }
func (p *constProcessor) GetLatencySamples() int32 { return 3 }
func (p *constProcessor) GetTailSamples() int32 { return 7 }
func (p *constProcessor) Reset() { p.resets++ }

func TestBufferedProcessorDelaysOutput(t *testing.T) {
	inner := newConstProcessor()
	bp := NewBufferedProcessor(inner, 2)
	require.NoError(t, bp.Initialize(1000, 16))

	latency := int(bp.GetLatencySamples()) - 3
	assert.Equal(t, 50, latency)
	assert.Equal(t, int32(7), bp.GetTailSamples())

	ctx := process.NewContext(16)
	var out []float32
	for len(out) < latency+32 {
		ctx.Output = [][]float32{make([]float32, 16), make([]float32, 16)}
		bp.ProcessAudio(ctx)
		assert.Equal(t, ctx.Output[0], ctx.Output[1])
		out = append(out, ctx.Output[0]...)
	}

	for i := 0; i < latency; i++ {
		assert.Zero(t, out[i])
	}
	assert.Equal(t, float32(1), out[latency])
	assert.Equal(t, float32(2), out[latency+1])

	under, over := bp.GetBufferHealth()
	assert.Zero(t, under)
	assert.Zero(t, over)
}

func TestBufferedProcessorForwards(t *testing.T) {
	inner := newConstProcessor()
	bp := NewBufferedProcessor(inner, 2)
	require.NoError(t, bp.Initialize(1000, 16))

	require.NoError(t, bp.SetActive(true))
	assert.True(t, inner.active)
	assert.True(t, bp.IsActive())

	bp.Reset()
	assert.Equal(t, 1, inner.resets)
	assert.Same(t, inner.params, bp.GetParameters())
}

func TestBufferedProcessorBlockLargerThanBuffer(t *testing.T) {
	inner := newConstProcessor()
	bp := NewBufferedProcessor(inner, 1)
	require.NoError(t, bp.Initialize(1000, 512))

	ctx := process.NewContext(512)
	ctx.Output = [][]float32{make([]float32, 512)}
	for i := 0; i < 3; i++ {
		bp.ProcessAudio(ctx)
	}

	// third block starts at sample 1024, which is input sample 1024-50
	assert.Equal(t, float32(1024-50+1), ctx.Output[0][0])
	under, over := bp.GetBufferHealth()
	assert.Zero(t, under)
	assert.Zero(t, over)
}
