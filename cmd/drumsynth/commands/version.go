package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/r-cha/drumsynth/pkg/drumsynth"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := drumsynth.Plugin{}.GetInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s/%s)\n",
				info.Name, info.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
