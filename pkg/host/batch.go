package host

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/r-cha/drumsynth/pkg/framework/plugin"
	"github.com/r-cha/drumsynth/pkg/midi"
)

// RenderJob is one independent render
type RenderJob struct {
	Name      string
	Processor plugin.Processor
	Events    []midi.Event
	Samples   int
}

// RenderAll renders jobs concurrently, at most parallelism at a time
// (unlimited when parallelism < 1). Results keep the job order. The first
// failure cancels the remaining jobs.
func (h *Offline) RenderAll(ctx context.Context, jobs []RenderJob, parallelism int) ([]*Buffer, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	h.Profiler()

	results := make([]*Buffer, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, job := range jobs {
		g.Go(func() error {
			buf, err := h.Render(gctx, job.Processor, job.Events, job.Samples)
			if err != nil {
				return fmt.Errorf("render %s: %w", job.Name, err)
			}
			results[i] = buf
			h.logger().Info("rendered", zap.String("job", job.Name), zap.Float64("seconds", buf.Duration()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
