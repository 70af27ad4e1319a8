// Package config loads drumsynth settings from defaults, an optional YAML
// file, a .env file, DRUMSYNTH_ environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores: DRUMSYNTH_AUDIO_SAMPLE_RATE.
const EnvPrefix = "DRUMSYNTH"

// Keys
const (
	KeySampleRate  = "audio.sample_rate"
	KeyBlockSize   = "audio.block_size"
	KeyChannels    = "audio.channels"
	KeyBuffering   = "audio.buffering"
	KeyBitDepth    = "audio.bit_depth"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyValidator   = "validator.path"
	KeyStrictness  = "validator.strictness"
	KeyTimeout     = "validator.timeout"
	KeyBundleOut   = "bundle.out_dir"
	KeyPluginName  = "plugin.name"
	KeyParallelism = "render.parallelism"
)

// Config holds all drumsynth settings
type Config struct {
	Audio     AudioConfig     `mapstructure:"audio"`
	Log       LogConfig       `mapstructure:"log"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Bundle    BundleConfig    `mapstructure:"bundle"`
	Plugin    PluginConfig    `mapstructure:"plugin"`
	Render    RenderConfig    `mapstructure:"render"`
}

// AudioConfig is the offline host setup
type AudioConfig struct {
	SampleRate float64 `mapstructure:"sample_rate"`
	BlockSize  int     `mapstructure:"block_size"`
	Channels   int     `mapstructure:"channels"`
	Buffering  bool    `mapstructure:"buffering"`
	BitDepth   int     `mapstructure:"bit_depth"`
}

// LogConfig selects the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidatorConfig configures pluginval
type ValidatorConfig struct {
	Path       string        `mapstructure:"path"`
	Strictness int           `mapstructure:"strictness"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// BundleConfig configures bundle output
type BundleConfig struct {
	OutDir string `mapstructure:"out_dir"`
}

// PluginConfig overrides plugin metadata
type PluginConfig struct {
	Name string `mapstructure:"name"`
}

// RenderConfig tunes batch rendering
type RenderConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

// New returns a viper instance with defaults and environment lookup set up.
// Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeySampleRate, 44100.0)
	v.SetDefault(KeyBlockSize, 512)
	v.SetDefault(KeyChannels, 2)
	v.SetDefault(KeyBuffering, false)
	v.SetDefault(KeyBitDepth, 24)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetDefault(KeyValidator, "")
	v.SetDefault(KeyStrictness, 5)
	v.SetDefault(KeyTimeout, 5*time.Minute)

	v.SetDefault(KeyBundleOut, "target/bundled")
	v.SetDefault(KeyPluginName, "Drum Synth")
	v.SetDefault(KeyParallelism, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads envFile (if present) into the environment, then configFile.
// An empty configFile looks for drumsynth.yaml in the working directory and
// carries on without one.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("drumsynth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the tools cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", KeySampleRate, c.Audio.SampleRate))
	}
	if c.Audio.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyBlockSize, c.Audio.BlockSize))
	}
	if c.Audio.Channels < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", KeyChannels, c.Audio.Channels))
	}
	if c.Audio.BitDepth != 16 && c.Audio.BitDepth != 24 {
		errs = append(errs, fmt.Errorf("%s must be 16 or 24, got %d", KeyBitDepth, c.Audio.BitDepth))
	}
	if c.Validator.Strictness < 1 || c.Validator.Strictness > 10 {
		errs = append(errs, fmt.Errorf("%s must be within 1..10, got %d", KeyStrictness, c.Validator.Strictness))
	}
	if c.Validator.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Validator.Timeout))
	}
	if c.Render.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyParallelism, c.Render.Parallelism))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
