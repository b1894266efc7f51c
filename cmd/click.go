package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at a point from a capture",
	Long: `Click at x,y in the coordinate space of the latest capture of the screen
(or of --window-id). Each CLI invocation starts without capture metadata, so
coordinates are treated as logical screen (or window-relative) points. Use
"serve" to click on coordinates taken from an earlier capture.

Without --x/--y the click happens at the current pointer position.`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "X coordinate")
	clickCmd.Flags().Int("y", 0, "Y coordinate")
	windowFlag(clickCmd, "Window the coordinates are relative to")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Int("press-length", 0, "Milliseconds to hold the button")
}

func clickParams(cmd *cobra.Command) actions.Params {
	params := actions.Params{}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		params["x"], _ = cmd.Flags().GetInt("x")
		params["y"], _ = cmd.Flags().GetInt("y")
	}
	setWindowID(cmd, params)
	params["button"], _ = cmd.Flags().GetString("button")
	params["double"], _ = cmd.Flags().GetBool("double")
	params["pressLength"], _ = cmd.Flags().GetInt("press-length")
	return params
}

func runClick(cmd *cobra.Command, args []string) error {
	return runTool(actions.KindMouseClick, clickParams(cmd))
}
