package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/r-cha/drumsynth/internal/config"
	"github.com/r-cha/drumsynth/pkg/bundle"
	"github.com/r-cha/drumsynth/pkg/drumsynth"
)

func bundleCmd() *cobra.Command {
	var (
		binary    string
		goos      string
		goarch    string
		check     bool
		checkWith string
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Lay out a VST3 bundle around a built binary",
		Long: `Lay out a VST3 bundle around a built binary and write its metadata.

With --validate the bundle is passed to pluginval afterwards; a failed
bundle step skips validation.

Example:
  drumsynth bundle --binary build/libdrumsynth.so --validate --level quick`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := drumsynth.Plugin{}.GetInfo()
			if cfg.Plugin.Name != "" {
				info.Name = cfg.Plugin.Name
			}

			b := &bundle.Bundler{
				OutDir: cfg.Bundle.OutDir,
				GOOS:   goos,
				GOARCH: goarch,
				Logger: logger.Named("bundle"),
			}
			root, err := b.Create(binary, info)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bundled %s\n", root)

			if !check {
				return nil
			}
			return runValidation(cmd, root, checkWith)
		},
	}

	cmd.Flags().StringVar(&binary, "binary", "", "built plugin binary")
	cmd.Flags().String("out", "", "directory receiving the bundle")
	cmd.Flags().StringVar(&goos, "os", runtime.GOOS, "target operating system")
	cmd.Flags().StringVar(&goarch, "arch", runtime.GOARCH, "target architecture")
	cmd.Flags().BoolVar(&check, "validate", false, "run pluginval on the new bundle")
	cmd.Flags().StringVar(&checkWith, "level", "", "named strictness for --validate")
	_ = cmd.MarkFlagRequired("binary")
	bindFlag(cmd.Flags().Lookup("out"), config.KeyBundleOut)

	return cmd
}
