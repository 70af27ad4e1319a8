package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/r-cha/drumsynth/pkg/drumsynth"
	"github.com/r-cha/drumsynth/pkg/framework/param"
	"github.com/r-cha/drumsynth/pkg/preset"
)

func paramsCmd() *cobra.Command {
	var presetFile string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "List parameters grouped by section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := drumsynth.New().GetParameters()
			if presetFile != "" {
				p, err := preset.Load(presetFile)
				if err != nil {
					return err
				}
				if err := p.Apply(reg); err != nil {
					return err
				}
			}
			return printParams(cmd.OutOrStdout(), reg)
		},
	}

	cmd.Flags().StringVar(&presetFile, "preset", "", "show values from a preset instead of the defaults")
	return cmd
}

func printParams(w io.Writer, reg *param.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, unit := range reg.Units() {
		params := reg.InUnit(unit.ID)
		if len(params) == 0 {
			continue
		}

		fmt.Fprintf(tw, "[%s]\n", unit.Name)
		for _, p := range params {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s .. %s\n",
				p.Key, p.Name, p.FormatValue(p.GetValue()), p.FormatValue(0), p.FormatValue(1))
		}
	}
	return tw.Flush()
}
