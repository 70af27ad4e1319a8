package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/r-cha/drumsynth/internal/config"
	"github.com/r-cha/drumsynth/pkg/framework/debug"
)

var (
	configFile string
	envFile    string

	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
)

// Execute runs the CLI until it finishes or is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	v = config.New()

	root := &cobra.Command{
		Use:          "drumsynth",
		Short:        "Percussive synth engine, offline renderer and plugin tooling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(v, configFile, envFile)
			if err != nil {
				return err
			}
			l, err := debug.NewLogger(debug.LogOptions{Level: c.Log.Level, Format: c.Log.Format})
			if err != nil {
				return err
			}
			cfg, logger = c, l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./drumsynth.yaml)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "log format: console or json")
	bindFlag(root.PersistentFlags().Lookup("log-level"), config.KeyLogLevel)
	bindFlag(root.PersistentFlags().Lookup("log-format"), config.KeyLogFormat)

	root.AddCommand(renderCmd(), paramsCmd(), presetCmd(), validateCmd(), bundleCmd(), versionCmd())
	return root
}

// bindFlag lets a changed flag override the config key
func bindFlag(flag *pflag.Flag, key string) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
