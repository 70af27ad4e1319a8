// Package commands defines the drumsynth CLI.
//
// Commands
//
//   - render     Render a pattern through the drum synth to WAV
//   - params     List parameters grouped by section
//   - preset     Save, show, export and import presets
//   - validate   Run pluginval against a bundle
//   - bundle     Lay out a VST3 bundle around a built binary
//   - version    Print version information
//
// # Configuration
//
// The root command loads settings before any subcommand runs: defaults,
// then drumsynth.yaml (or --config), then .env, then DRUMSYNTH_ variables,
// then flags. Subcommands read the merged result and share one logger.
package commands
