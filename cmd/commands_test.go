package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/fakes"
)

// flagCmd returns a throwaway command with the flags declared by setup, so
// tests do not leak flag values through the package-level commands.
func flagCmd(setup func(*cobra.Command)) *cobra.Command {
	c := &cobra.Command{Use: "test"}
	setup(c)
	return c
}

func TestParseBatchInput_List(t *testing.T) {
	params, err := parseBatchInput([]byte(`
- kind: mouse_click
  params: { x: 10, y: 20 }
  delayAfterMs: 100
- kind: keyboard_press
  params: { key: enter }
`))
	require.NoError(t, err)
	steps, err := actions.ParseSteps(params["actions"])
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "mouse_click", steps[0].Kind)
	assert.Equal(t, 100, steps[0].DelayAfterMs)
	assert.Equal(t, "enter", steps[1].Params["key"])
}

func TestParseBatchInput_JSONMapping(t *testing.T) {
	params, err := parseBatchInput([]byte(`{"actions":[{"kind":"keyboard_type","params":{"text":"hi"}}],"continueOnError":true}`))
	require.NoError(t, err)
	assert.Equal(t, true, params["continueOnError"])
	steps, err := actions.ParseSteps(params["actions"])
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "keyboard_type", steps[0].Kind)
}

func TestParseBatchInput_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":      "",
		"scalar":     "42",
		"no actions": "continueOnError: true",
		"bad yaml":   "- kind: [",
	} {
		_, err := parseBatchInput([]byte(in))
		assert.Error(t, err, name)
	}
}

func TestClickParams(t *testing.T) {
	c := flagCmd(func(c *cobra.Command) {
		c.Flags().Int("x", 0, "")
		c.Flags().Int("y", 0, "")
		windowFlag(c, "")
		c.Flags().String("button", "left", "")
		c.Flags().Bool("double", false, "")
		c.Flags().Int("press-length", 0, "")
	})
	require.NoError(t, c.Flags().Parse([]string{"--x", "5", "--y", "6", "--window-id", "3", "--button", "right"}))

	p := clickParams(c)
	assert.Equal(t, 5, p["x"])
	assert.Equal(t, 6, p["y"])
	assert.Equal(t, 3, p["windowId"])
	assert.Equal(t, "right", p["button"])
}

func TestClickParams_NoPointUsesPointer(t *testing.T) {
	c := flagCmd(func(c *cobra.Command) {
		c.Flags().Int("x", 0, "")
		c.Flags().Int("y", 0, "")
		windowFlag(c, "")
		c.Flags().String("button", "left", "")
		c.Flags().Bool("double", false, "")
		c.Flags().Int("press-length", 0, "")
	})
	require.NoError(t, c.Flags().Parse(nil))

	p := clickParams(c)
	assert.NotContains(t, p, "x")
	assert.NotContains(t, p, "windowId")
}

func TestTypeParams(t *testing.T) {
	setup := func(c *cobra.Command) {
		c.Flags().String("text", "", "")
		c.Flags().Int("delay", 0, "")
		windowFlag(c, "")
	}

	c := flagCmd(setup)
	require.NoError(t, c.Flags().Parse([]string{"--delay", "20"}))
	p, err := typeParams(c, []string{"hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", p["text"])
	assert.Equal(t, 20, p["delayMs"])

	c = flagCmd(setup)
	require.NoError(t, c.Flags().Parse([]string{"--text", "a"}))
	_, err = typeParams(c, []string{"b"})
	assert.Error(t, err)

	c = flagCmd(setup)
	require.NoError(t, c.Flags().Parse(nil))
	_, err = typeParams(c, nil)
	assert.Error(t, err)
}

func TestPressParams(t *testing.T) {
	c := flagCmd(func(c *cobra.Command) {
		c.Flags().StringSlice("modifiers", nil, "")
		c.Flags().Int("press-length", 0, "")
		windowFlag(c, "")
	})
	require.NoError(t, c.Flags().Parse([]string{"--modifiers", "cmd,shift"}))

	p := pressParams(c, " s ")
	assert.Equal(t, "s", p["key"])
	assert.Equal(t, []string{"cmd", "shift"}, p["modifiers"])
}

func TestScreenshotRequest(t *testing.T) {
	setup := func(c *cobra.Command) {
		windowFlag(c, "")
		c.Flags().String("window", "", "")
		c.Flags().String("region", "", "")
		c.Flags().String("output", "", "")
	}

	c := flagCmd(setup)
	require.NoError(t, c.Flags().Parse([]string{"--region", "0,0,100,50"}))
	kind, p := screenshotRequest(c)
	assert.Equal(t, actions.KindScreenCapture, kind)
	assert.Equal(t, "0,0,100,50", p["region"])

	c = flagCmd(setup)
	require.NoError(t, c.Flags().Parse([]string{"--window", "Terminal"}))
	kind, p = screenshotRequest(c)
	assert.Equal(t, actions.KindWindowCapture, kind)
	assert.Equal(t, "Terminal", p["windowTitle"])
}

func TestLoadConfig_FlagOverridesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.Duration("ttl", 0, "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--ttl", "90s"}))

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 90*time.Second, cfg.Metadata.TTL)
	assert.Equal(t, "stdio", cfg.Server.Transport)
}

func TestBuildApp_WiresComponents(t *testing.T) {
	dir := &fakes.Directory{
		Screen:  model.Size{Width: 1440, Height: 900},
		Windows: []model.WindowRecord{{ID: 1, Title: "Editor", Bounds: model.Rect{Width: 800, Height: 600}}},
	}
	provider := &platform.Provider{
		Name:    "fake",
		Input:   &fakes.Input{},
		Grabber: &fakes.Grabber{Size: model.Size{Width: 2880, Height: 1800}},
		Windows: dir,
	}
	cfg := config.Defaults()
	cfg.Input.FocusSettle = 0
	cfg.Capture.SettleDelay = 0
	cfg.Debug.Enabled = true
	cfg.Debug.MarkerDir = t.TempDir()

	a, err := buildApp(cfg, provider, nil)
	require.NoError(t, err)

	res := a.orch.Execute(a.context(), actions.KindScreenCapture, actions.Params{})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, a.store.Len())

	res = a.orch.Execute(a.context(), actions.KindMouseClick, actions.Params{"x": 576, "y": 360})
	require.True(t, res.Success, res.Error)
	markers, err := os.ReadDir(cfg.Debug.MarkerDir)
	require.NoError(t, err)
	assert.Len(t, markers, 1, "click after a capture writes one debug marker")

	res = a.orch.Execute(a.context(), actions.KindListWindows, actions.Params{})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, res.Data["count"])
	assert.NoError(t, a.Close())
}
