package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-cha/drumsynth/pkg/drumsynth"
	"github.com/r-cha/drumsynth/pkg/midi"
)

func TestRenderAllKeepsOrder(t *testing.T) {
	h := NewOffline(44100, 256, 2, nil)
	events := []midi.Event{noteOn(0, 36)}

	var jobs []RenderJob
	for seed := int64(1); seed <= 4; seed++ {
		jobs = append(jobs, RenderJob{
			Name:      "hit",
			Processor: drumsynth.New(drumsynth.WithSeed(seed)),
			Events:    events,
			Samples:   2048,
		})
	}

	results, err := h.RenderAll(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i := range jobs {
		want, err := NewOffline(44100, 256, 2, nil).Render(context.Background(), drumsynth.New(drumsynth.WithSeed(int64(i+1))), events, 2048)
		require.NoError(t, err)
		assert.Equal(t, want.Channels, results[i].Channels, "job %d", i)
	}
}

func TestRenderAllFails(t *testing.T) {
	bad := newRecorder()
	bad.initErr = errors.New("no device")

	jobs := []RenderJob{
		{Name: "ok", Processor: newRecorder(), Samples: 100},
		{Name: "bad", Processor: bad, Samples: 100},
	}

	_, err := NewOffline(1000, 64, 2, nil).RenderAll(context.Background(), jobs, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, bad.initErr)
	assert.Contains(t, err.Error(), "render bad")
}
