package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-cha/drumsynth/internal/config"
	"github.com/r-cha/drumsynth/pkg/validate"
)

func validateCmd() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "validate <bundle>",
		Short: "Run pluginval against a bundle",
		Long: `Run pluginval against a bundle. The exit status is non-zero when
validation fails, times out or the validator cannot be found.

Levels: quick (5), comprehensive (10), ci (8). --level overrides
--strictness.

Example:
  drumsynth validate "target/bundled/Drum Synth.vst3" --level ci`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd, args[0], level)
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "named strictness: quick, comprehensive, ci")
	cmd.Flags().Int("strictness", 0, "strictness level 1-10")
	cmd.Flags().Duration("timeout", 0, "abort validation after this long")
	cmd.Flags().String("validator", "", "path to the pluginval binary")
	bindFlag(cmd.Flags().Lookup("strictness"), config.KeyStrictness)
	bindFlag(cmd.Flags().Lookup("timeout"), config.KeyTimeout)
	bindFlag(cmd.Flags().Lookup("validator"), config.KeyValidator)

	return cmd
}

func runValidation(cmd *cobra.Command, bundle, level string) error {
	strictness := cfg.Validator.Strictness
	if level != "" {
		s, err := validate.LevelStrictness(level)
		if err != nil {
			return err
		}
		strictness = s
	}

	runner := validate.NewRunner(cfg.Validator.Path, strictness, cfg.Validator.Timeout, logger.Named("validate"))
	runner.Stream = cmd.OutOrStdout()

	res, err := runner.Run(cmd.Context(), bundle)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validation passed at strictness %d in %s\n", strictness, res.Duration.Round(time.Millisecond))
	return nil
}
