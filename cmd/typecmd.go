package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text",
	Long:  "Type text into the focused window, or into --window-id after focusing it.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runType,
}

var pressCmd = &cobra.Command{
	Use:   "press <key>",
	Short: "Press a key or key combination",
	Long: `Press a key, optionally holding modifiers.

Examples:
  desktop-pilot press enter
  desktop-pilot press s --modifiers cmd
  desktop-pilot press tab --modifiers ctrl,shift --press-length 200`,
	Args: cobra.ExactArgs(1),
	RunE: runPress,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to the positional argument)")
	typeCmd.Flags().Int("delay", 0, "Delay between characters in milliseconds")
	windowFlag(typeCmd, "Focus this window before typing")

	rootCmd.AddCommand(pressCmd)
	pressCmd.Flags().StringSlice("modifiers", nil, "Modifiers: cmd, ctrl, alt, shift")
	pressCmd.Flags().Int("press-length", 0, "Milliseconds to hold the key")
	windowFlag(pressCmd, "Focus this window before pressing")
}

func typeParams(cmd *cobra.Command, args []string) (actions.Params, error) {
	text, _ := cmd.Flags().GetString("text")
	if len(args) == 1 {
		if text != "" {
			return nil, fmt.Errorf("pass text either as an argument or with --text, not both")
		}
		text = args[0]
	}
	if text == "" {
		return nil, fmt.Errorf("nothing to type")
	}
	params := actions.Params{"text": text}
	params["delayMs"], _ = cmd.Flags().GetInt("delay")
	setWindowID(cmd, params)
	return params, nil
}

func runType(cmd *cobra.Command, args []string) error {
	params, err := typeParams(cmd, args)
	if err != nil {
		return err
	}
	return runTool(actions.KindKeyboardType, params)
}

func pressParams(cmd *cobra.Command, key string) actions.Params {
	params := actions.Params{"key": strings.TrimSpace(key)}
	if mods, _ := cmd.Flags().GetStringSlice("modifiers"); len(mods) > 0 {
		params["modifiers"] = mods
	}
	params["pressLength"], _ = cmd.Flags().GetInt("press-length")
	setWindowID(cmd, params)
	return params
}

func runPress(cmd *cobra.Command, args []string) error {
	return runTool(actions.KindKeyboardPress, pressParams(cmd, args[0]))
}
