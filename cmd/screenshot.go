package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/output"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen or a window",
	Long: `Capture the primary display, a region of it, or a single window, downscaled
for vision models. Without --output the encoded image is written to stdout as
base64; with --output the image is saved and the capture summary is printed.`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	windowFlag(screenshotCmd, "Capture window by system ID")
	screenshotCmd.Flags().String("window", "", "Capture window by title substring")
	screenshotCmd.Flags().String("region", "", "Screen region in logical coordinates: x,y,width,height")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
}

func screenshotRequest(cmd *cobra.Command) (string, actions.Params) {
	params := actions.Params{}
	window, _ := cmd.Flags().GetString("window")
	setWindowID(cmd, params)
	if _, ok := params["windowId"]; ok || window != "" {
		if window != "" {
			params["windowTitle"] = window
		}
		return actions.KindWindowCapture, params
	}
	if region, _ := cmd.Flags().GetString("region"); region != "" {
		params["region"] = region
	}
	return actions.KindScreenCapture, params
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	kind, params := screenshotRequest(cmd)
	outPath, _ := cmd.Flags().GetString("output")

	a, err := newApp(appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.orch.Execute(a.context(), kind, params)
	if !res.Success || res.Image == nil {
		if err := output.Print(res); err != nil {
			return err
		}
		return resultError(res)
	}

	if outPath == "" {
		encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
		if _, err := encoder.Write(res.Image.Data); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	if err := os.WriteFile(outPath, res.Image.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return output.Print(res)
}
