package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/r-cha/drumsynth/internal/config"
	"github.com/r-cha/drumsynth/pkg/audiofile"
	"github.com/r-cha/drumsynth/pkg/drumsynth"
	"github.com/r-cha/drumsynth/pkg/dsp/analysis"
	"github.com/r-cha/drumsynth/pkg/host"
	"github.com/r-cha/drumsynth/pkg/pattern"
	"github.com/r-cha/drumsynth/pkg/preset"
)

func renderCmd() *cobra.Command {
	var (
		patternFile string
		presetFiles []string
		out         string
		seed        int64
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a pattern through the drum synth to WAV",
		Long: `Render a pattern through the drum synth to WAV.

Without --pattern a single hit of note 36 is rendered. The output runs
until the last note-off plus the synth's reported tail.

With several --preset flags the presets render in parallel and --out
names a directory that receives one <preset>.wav per preset.

Example:
  drumsynth render --pattern groove.yaml --preset tight.yaml --out groove.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pat := pattern.Single()
			if patternFile != "" {
				p, err := pattern.Load(patternFile)
				if err != nil {
					return err
				}
				pat = p
			}

			var opts []drumsynth.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, drumsynth.WithSeed(seed))
			}

			r := &renderer{
				pattern: pat,
				opts:    opts,
				host:    newHost(),
				out:     cmd.OutOrStdout(),
				log:     logger.Named("render"),
			}

			targets, err := renderTargets(presetFiles, out)
			if err != nil {
				return err
			}

			if watch {
				if len(presetFiles) != 1 {
					return errors.New("--watch needs exactly one --preset")
				}
				return r.watch(cmd.Context(), presetFiles[0], targets[0])
			}
			return r.render(cmd.Context(), targets)
		},
	}

	cmd.Flags().StringVar(&patternFile, "pattern", "", "pattern YAML file")
	cmd.Flags().StringArrayVar(&presetFiles, "preset", nil, "preset YAML file (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "drumsynth.wav", "output WAV file, or directory with several presets")
	cmd.Flags().Int64Var(&seed, "seed", 0, "noise seed for reproducible output")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-render whenever the preset file changes")

	cmd.Flags().Float64("sample-rate", 0, "sample rate in Hz")
	cmd.Flags().Int("block-size", 0, "processing block size")
	cmd.Flags().Int("channels", 0, "output channels")
	cmd.Flags().Int("bit-depth", 0, "WAV bit depth: 16 or 24")
	cmd.Flags().Bool("buffered", false, "run through the write-ahead output buffer")
	cmd.Flags().Int("parallel", 0, "concurrent renders (0 = unlimited)")
	bindFlag(cmd.Flags().Lookup("sample-rate"), config.KeySampleRate)
	bindFlag(cmd.Flags().Lookup("block-size"), config.KeyBlockSize)
	bindFlag(cmd.Flags().Lookup("channels"), config.KeyChannels)
	bindFlag(cmd.Flags().Lookup("bit-depth"), config.KeyBitDepth)
	bindFlag(cmd.Flags().Lookup("buffered"), config.KeyBuffering)
	bindFlag(cmd.Flags().Lookup("parallel"), config.KeyParallelism)

	return cmd
}

func newHost() *host.Offline {
	h := host.NewOffline(cfg.Audio.SampleRate, cfg.Audio.BlockSize, cfg.Audio.Channels, logger.Named("host"))
	h.Buffered = cfg.Audio.Buffering
	return h
}

// renderTarget pairs an optional preset with its output file
type renderTarget struct {
	preset *preset.Preset
	out    string
}

func renderTargets(presetFiles []string, out string) ([]renderTarget, error) {
	if len(presetFiles) == 0 {
		return []renderTarget{{out: out}}, nil
	}

	targets := make([]renderTarget, 0, len(presetFiles))
	for _, path := range presetFiles {
		p, err := preset.Load(path)
		if err != nil {
			return nil, err
		}
		dst := out
		if len(presetFiles) > 1 {
			dst = filepath.Join(out, p.Name+".wav")
		}
		targets = append(targets, renderTarget{preset: p, out: dst})
	}
	return targets, nil
}

type renderer struct {
	pattern *pattern.Pattern
	opts    []drumsynth.Option
	host    *host.Offline
	out     io.Writer
	log     *zap.Logger
}

func (r *renderer) job(t renderTarget) (host.RenderJob, error) {
	proc := drumsynth.New(r.opts...)
	name := "default"
	if t.preset != nil {
		if err := t.preset.Apply(proc.GetParameters()); err != nil {
			return host.RenderJob{}, err
		}
		name = t.preset.Name
	}

	sr := r.host.SampleRate
	if err := proc.Initialize(sr, int32(r.host.BlockSize)); err != nil {
		return host.RenderJob{}, err
	}

	return host.RenderJob{
		Name:      name,
		Processor: proc,
		Events:    r.pattern.Events(sr),
		Samples:   r.pattern.DurationSamples(sr, int(proc.GetTailSamples())),
	}, nil
}

func (r *renderer) render(ctx context.Context, targets []renderTarget) error {
	jobs := make([]host.RenderJob, len(targets))
	for i, t := range targets {
		job, err := r.job(t)
		if err != nil {
			return err
		}
		jobs[i] = job
	}

	bufs, err := r.host.RenderAll(ctx, jobs, cfg.Render.Parallelism)
	if err != nil {
		return err
	}
	r.log.Debug("block timing", zap.String("report", r.host.Profiler().Report()))

	for i, buf := range bufs {
		r.report(jobs[i].Name, buf)

		dst := targets[i].out
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := audiofile.WriteWAVFile(dst, buf.Channels, int(buf.SampleRate), cfg.Audio.BitDepth); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "wrote %s (%.2fs)\n", dst, buf.Duration())
	}
	return nil
}

func (r *renderer) report(name string, buf *host.Buffer) {
	if buf.NumChannels() == 0 {
		return
	}
	a := analysis.NewAnalyzer()
	res := a.Analyze(buf.Channels[0])

	r.log.Info("analysis",
		zap.String("job", name),
		zap.Float64("peak_db", res.PeakDB()),
		zap.Float32("rms", res.RMS),
		zap.Bool("silent", res.Silent),
	)
	for _, issue := range a.Issues(res) {
		r.log.Warn("output issue", zap.String("job", name), zap.String("issue", issue))
	}
}

func (r *renderer) watch(ctx context.Context, presetFile string, target renderTarget) error {
	if err := r.render(ctx, []renderTarget{target}); err != nil {
		return err
	}

	updates, err := preset.NewWatcher(presetFile, logger.Named("preset")).Watch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "watching %s, Ctrl+C to stop\n", presetFile)

	for p := range updates {
		target.preset = p
		if err := r.render(ctx, []renderTarget{target}); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.log.Error("render failed", zap.Error(err))
		}
	}
	return nil
}
