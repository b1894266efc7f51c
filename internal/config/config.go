// Package config loads desktop-pilot settings from defaults, an optional
// YAML file, DESKTOP_PILOT_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix prefixes every environment override, e.g. DESKTOP_PILOT_CAPTURE_QUALITY.
const EnvPrefix = "DESKTOP_PILOT"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Capture  CaptureConfig  `mapstructure:"capture"  yaml:"capture"`
	Metadata MetadataConfig `mapstructure:"metadata" yaml:"metadata"`
	Input    InputConfig    `mapstructure:"input"    yaml:"input"`
	Debug    DebugConfig    `mapstructure:"debug"    yaml:"debug"`
	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Port      int    `mapstructure:"port"      yaml:"port"`
}

type CaptureConfig struct {
	Format      string        `mapstructure:"format"       yaml:"format"`
	Quality     int           `mapstructure:"quality"      yaml:"quality"`
	MaxBytes    int           `mapstructure:"max_bytes"    yaml:"max_bytes"`
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	Fraction    float64       `mapstructure:"fraction"     yaml:"fraction"`
	MaxWidth    int           `mapstructure:"max_width"    yaml:"max_width"`
	MaxHeight   int           `mapstructure:"max_height"   yaml:"max_height"`
}

type MetadataConfig struct {
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type InputConfig struct {
	FocusSettle time.Duration `mapstructure:"focus_settle" yaml:"focus_settle"`
	ClickSettle time.Duration `mapstructure:"click_settle" yaml:"click_settle"`
	// Display is the X11 display; empty uses $DISPLAY.
	Display string `mapstructure:"display" yaml:"display"`
}

type DebugConfig struct {
	Enabled   bool   `mapstructure:"enabled"    yaml:"enabled"`
	MarkerDir string `mapstructure:"marker_dir" yaml:"marker_dir"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"       yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
	Output      string `mapstructure:"output"      yaml:"output"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Transport: "stdio", Port: 8080},
		Capture: CaptureConfig{
			Format:      "jpeg",
			Quality:     60,
			MaxBytes:    300 * 1024,
			SettleDelay: 500 * time.Millisecond,
			Fraction:    0.5,
			MaxWidth:    1280,
			MaxHeight:   720,
		},
		Metadata: MetadataConfig{TTL: 5 * time.Minute},
		Input: InputConfig{
			FocusSettle: 500 * time.Millisecond,
			ClickSettle: 50 * time.Millisecond,
		},
		Log: LogConfig{Level: "warn", Output: "stderr"},
	}
}

// DefaultPath is $HOME/.config/desktop-pilot/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "desktop-pilot", "config.yaml")
}

// NewViper builds a viper instance with defaults and env binding. When path
// is empty the default path is read if it exists.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Defaults())

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return v, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.transport", d.Server.Transport)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("capture.format", d.Capture.Format)
	v.SetDefault("capture.quality", d.Capture.Quality)
	v.SetDefault("capture.max_bytes", d.Capture.MaxBytes)
	v.SetDefault("capture.settle_delay", d.Capture.SettleDelay)
	v.SetDefault("capture.fraction", d.Capture.Fraction)
	v.SetDefault("capture.max_width", d.Capture.MaxWidth)
	v.SetDefault("capture.max_height", d.Capture.MaxHeight)
	v.SetDefault("metadata.ttl", d.Metadata.TTL)
	v.SetDefault("input.focus_settle", d.Input.FocusSettle)
	v.SetDefault("input.click_settle", d.Input.ClickSettle)
	v.SetDefault("input.display", d.Input.Display)
	v.SetDefault("debug.enabled", d.Debug.Enabled)
	v.SetDefault("debug.marker_dir", d.Debug.MarkerDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.output", d.Log.Output)
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Server.Transport == "stdio" || c.Server.Transport == "streamable-http",
		"server.transport must be stdio or streamable-http, got %q", c.Server.Transport)
	check(c.Server.Port > 0 && c.Server.Port < 65536, "server.port must be 1-65535, got %d", c.Server.Port)
	check(c.Capture.Format == "jpeg" || c.Capture.Format == "jpg" || c.Capture.Format == "png",
		"capture.format must be jpeg or png, got %q", c.Capture.Format)
	check(c.Capture.Quality >= 1 && c.Capture.Quality <= 100, "capture.quality must be 1-100, got %d", c.Capture.Quality)
	check(c.Capture.MaxBytes > 0, "capture.max_bytes must be positive, got %d", c.Capture.MaxBytes)
	check(c.Capture.SettleDelay >= 0, "capture.settle_delay must not be negative")
	check(c.Capture.Fraction > 0 && c.Capture.Fraction <= 1, "capture.fraction must be in (0, 1], got %g", c.Capture.Fraction)
	check(c.Capture.MaxWidth >= 0 && c.Capture.MaxHeight >= 0, "capture.max_width and capture.max_height must not be negative")
	check(c.Metadata.TTL > 0, "metadata.ttl must be positive, got %s", c.Metadata.TTL)
	check(c.Input.FocusSettle >= 0 && c.Input.ClickSettle >= 0, "input settle delays must not be negative")
	if errs != nil {
		return fmt.Errorf("invalid configuration: %w", errs)
	}
	return nil
}
