package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-pilot/internal/actions"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple actions in a batch",
	Long: `Execute a sequence of actions read from stdin as YAML or JSON.

The input is either a list of steps or a mapping with "actions" and
"continueOnError". Each step has a kind, optional params and an optional
delayAfterMs. By default execution stops at the first failed step.

Example:
  desktop-pilot do <<'EOF'
  - kind: mouse_click
    params: { x: 200, y: 140 }
    delayAfterMs: 300
  - kind: keyboard_type
    params: { text: "hello" }
  - kind: keyboard_press
    params: { key: enter }
  EOF`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("continue-on-error", false, "Keep running after a failed step")
	doCmd.Flags().String("file", "", "Read steps from a file instead of stdin")
}

// parseBatchInput decodes a batch document into tool params.
func parseBatchInput(data []byte) (actions.Params, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse steps: %w", err)
	}
	switch v := doc.(type) {
	case []any:
		return actions.Params{"actions": v}, nil
	case map[string]any:
		if _, ok := v["actions"]; !ok {
			return nil, fmt.Errorf("batch document has no actions")
		}
		return actions.Params(v), nil
	case nil:
		return nil, fmt.Errorf("no steps provided")
	default:
		return nil, fmt.Errorf("steps must be a list or a mapping with actions, got %T", doc)
	}
}

func runDo(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read steps: %w", err)
	}

	params, err := parseBatchInput(data)
	if err != nil {
		return err
	}
	// An explicit flag overrides the document's continueOnError.
	if cmd.Flags().Changed("continue-on-error") {
		params["continueOnError"], _ = cmd.Flags().GetBool("continue-on-error")
	}
	return runTool(actions.KindBatch, params)
}
