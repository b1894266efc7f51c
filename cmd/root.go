package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-pilot",
	Short: "Let AI agents see and drive the desktop",
	Long: `desktop-pilot captures the screen or a window as a compact image and maps
coordinates the agent picks in that image back to real screen positions for
clicks, pointer moves and keyboard input.

Run "desktop-pilot serve" to expose the tools over MCP.`,
	SilenceUsage: true,
}

// appConfig is loaded by the root command before any subcommand runs.
var appConfig = config.Defaults()

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"debug":      "debug.enabled",
	"marker-dir": "debug.marker_dir",
	"transport":  "server.transport",
	"port":       "server.port",
	"quality":    "capture.quality",
	"max-bytes":  "capture.max_bytes",
	"ttl":        "metadata.ttl",
}

func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ~/.config/desktop-pilot/config.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (logs go to stderr)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write annotated marker images for every resolved click")
	rootCmd.PersistentFlags().String("marker-dir", "", "Directory for debug marker images")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err := loadConfig(path, cmd.Flags())
		if err != nil {
			return err
		}
		appConfig = cfg

		if _, err := logger.Init(logger.Options{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
			Output:      cfg.Log.Output,
		}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly.
func loadConfig(path string, flags *pflag.FlagSet) (*config.Config, error) {
	v, err := config.NewViper(path)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
