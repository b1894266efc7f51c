package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/output"
)

// runTool executes one operation and prints its result. A failed result
// is printed and also returned as an error so the exit code is non-zero.
func runTool(kind string, params actions.Params) error {
	a, err := newApp(appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.orch.Execute(a.context(), kind, params)
	if err := output.Print(res); err != nil {
		return err
	}
	return resultError(res)
}

func resultError(res actions.Result) error {
	if res.Success {
		return nil
	}
	return fmt.Errorf("%s: %s", res.ErrorKind, res.Error)
}

// windowFlag adds the --window-id flag shared by the input commands.
func windowFlag(cmd *cobra.Command, help string) {
	cmd.Flags().Int("window-id", 0, help)
}

// setWindowID copies --window-id into params when it was given.
func setWindowID(cmd *cobra.Command, params actions.Params) {
	if id, _ := cmd.Flags().GetInt("window-id"); id > 0 {
		params["windowId"] = id
	}
}
