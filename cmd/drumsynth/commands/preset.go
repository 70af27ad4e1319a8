package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/r-cha/drumsynth/pkg/drumsynth"
	"github.com/r-cha/drumsynth/pkg/preset"
)

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Save, show, export and import presets",
	}
	cmd.AddCommand(presetSaveCmd(), presetShowCmd(), presetExportCmd(), presetImportCmd())
	return cmd
}

func presetSaveCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Write the default parameter values to a preset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := preset.FromRegistry(name, drumsynth.New().GetParameters())
			if err := p.Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "init", "preset name")
	return cmd
}

func presetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a preset applied over the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.Load(args[0])
			if err != nil {
				return err
			}
			reg := drumsynth.New().GetParameters()
			if err := p.Apply(reg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p.Name)
			return printParams(cmd.OutOrStdout(), reg)
		},
	}
}

func presetExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <preset.yaml> <state.bin>",
		Short: "Convert a preset to the binary state a host stores",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.Load(args[0])
			if err != nil {
				return err
			}
			proc := drumsynth.New()
			if err := p.Apply(proc.GetParameters()); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := proc.SaveState(&buf); err != nil {
				return err
			}
			if err := os.WriteFile(args[1], buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d bytes)\n", args[1], buf.Len())
			return nil
		},
	}
}

func presetImportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <state.bin> <preset.yaml>",
		Short: "Convert binary host state back to a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			proc := drumsynth.New()
			if err := proc.LoadState(f); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := preset.FromRegistry(name, proc.GetParameters()).Save(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "imported", "preset name")
	return cmd
}
