package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/version"
)

var pointerCmd = &cobra.Command{
	Use:   "pointer",
	Short: "Print the pointer position in logical screen coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(actions.KindPointerPosition, actions.Params{})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "desktop-pilot", version.String())
	},
}

func init() {
	rootCmd.AddCommand(pointerCmd)
	rootCmd.AddCommand(versionCmd)
}
