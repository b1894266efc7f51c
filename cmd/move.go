package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the pointer to a window-relative point",
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().Int("x", 0, "X coordinate")
	moveCmd.Flags().Int("y", 0, "Y coordinate")
	windowFlag(moveCmd, "Window the coordinates are relative to (required)")
	_ = moveCmd.MarkFlagRequired("window-id")
	_ = moveCmd.MarkFlagRequired("x")
	_ = moveCmd.MarkFlagRequired("y")
}

func runMove(cmd *cobra.Command, args []string) error {
	params := actions.Params{}
	params["x"], _ = cmd.Flags().GetInt("x")
	params["y"], _ = cmd.Flags().GetInt("y")
	setWindowID(cmd, params)
	return runTool(actions.KindMouseMove, params)
}
