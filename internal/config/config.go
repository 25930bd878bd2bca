package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Scheme selects the color palette
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
	SchemeAuto  Scheme = "auto"
)

// Config holds all application configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Store   StoreConfig   `mapstructure:"store"`
	Profile ProfileConfig `mapstructure:"profile"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme         Scheme `mapstructure:"theme"`          // "light", "dark" or "auto"
	DefaultScreen string `mapstructure:"default_screen"` // "today", "profile" or "metrics"
}

// RefreshConfig tunes the pull-to-refresh gesture
type RefreshConfig struct {
	TriggerDistance  float64       `mapstructure:"trigger_distance"`  // points
	ParkedHeight     float64       `mapstructure:"parked_height"`     // points
	RowHeight        float64       `mapstructure:"row_height"`        // points per terminal row
	Timeout          time.Duration `mapstructure:"timeout"`           // upper bound for one refresh
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"` // artificial delay per refresh
	FailEvery        int           `mapstructure:"fail_every"`        // fail every Nth refresh (0 = never)
}

// StoreConfig holds local storage configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // directory for fitdeck.db; empty = memory only
}

// ProfileConfig holds defaults for a freshly seeded profile
type ProfileConfig struct {
	Name     string `mapstructure:"name"`
	StepGoal int    `mapstructure:"step_goal"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:         SchemeAuto,
			DefaultScreen: "today",
		},
		Refresh: RefreshConfig{
			TriggerDistance:  60,
			ParkedHeight:     80,
			RowHeight:        20,
			Timeout:          30 * time.Second,
			SimulatedLatency: 600 * time.Millisecond,
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
		Profile: ProfileConfig{
			Name:     "Vinay",
			StepGoal: 10000,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "fitdeck.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "fitdeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "fitdeck")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "fitdeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "fitdeck")
	}
}

// setDefaults registers every key so environment overrides resolve even
// without a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("ui.theme", string(cfg.UI.Theme))
	v.SetDefault("ui.default_screen", cfg.UI.DefaultScreen)

	v.SetDefault("refresh.trigger_distance", cfg.Refresh.TriggerDistance)
	v.SetDefault("refresh.parked_height", cfg.Refresh.ParkedHeight)
	v.SetDefault("refresh.row_height", cfg.Refresh.RowHeight)
	v.SetDefault("refresh.timeout", cfg.Refresh.Timeout)
	v.SetDefault("refresh.simulated_latency", cfg.Refresh.SimulatedLatency)
	v.SetDefault("refresh.fail_every", cfg.Refresh.FailEvery)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("profile.name", cfg.Profile.Name)
	v.SetDefault("profile.step_goal", cfg.Profile.StepGoal)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default locations.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (FITDECK_UI_THEME=dark)
	v.SetEnvPrefix("FITDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the UI cannot honour
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case SchemeLight, SchemeDark, SchemeAuto:
	default:
		return fmt.Errorf("invalid ui.theme %q (want light, dark or auto)", c.UI.Theme)
	}
	switch c.UI.DefaultScreen {
	case "today", "profile", "metrics":
	default:
		return fmt.Errorf("invalid ui.default_screen %q", c.UI.DefaultScreen)
	}
	if c.Refresh.TriggerDistance <= 0 || c.Refresh.RowHeight <= 0 {
		return errors.New("refresh.trigger_distance and refresh.row_height must be positive")
	}
	if c.Refresh.ParkedHeight < c.Refresh.TriggerDistance {
		return errors.New("refresh.parked_height must not be below refresh.trigger_distance")
	}
	return nil
}

// SaveConfig saves the configuration to path (or the default location)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("ui.theme", string(cfg.UI.Theme))
	v.Set("ui.default_screen", cfg.UI.DefaultScreen)

	v.Set("refresh.trigger_distance", cfg.Refresh.TriggerDistance)
	v.Set("refresh.parked_height", cfg.Refresh.ParkedHeight)
	v.Set("refresh.row_height", cfg.Refresh.RowHeight)
	v.Set("refresh.timeout", cfg.Refresh.Timeout.String())
	v.Set("refresh.simulated_latency", cfg.Refresh.SimulatedLatency.String())
	v.Set("refresh.fail_every", cfg.Refresh.FailEvery)

	v.Set("store.path", cfg.Store.Path)

	v.Set("profile.name", cfg.Profile.Name)
	v.Set("profile.step_goal", cfg.Profile.StepGoal)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
