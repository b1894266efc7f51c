package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List top-level windows",
	Long:  "List open windows with their ID, title, owner, PID, logical bounds and whether they are on the primary display.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Filter windows by title substring (case-insensitive)")
}

func runList(cmd *cobra.Command, args []string) error {
	params := actions.Params{}
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		params["title"] = title
	}
	return runTool(actions.KindListWindows, params)
}
