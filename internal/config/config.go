package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings for a planning run.
type Config struct {
	// Analysis window, trailing from now.
	WindowDays int `yaml:"window_days" mapstructure:"window_days"`

	// Author email commits are filtered to. Empty means "take it from
	// git config user.email", matching what the contribution graph counts.
	Email string `yaml:"email" mapstructure:"email"`

	// Daily count bounds.
	Weekday RangeConfig `yaml:"weekday" mapstructure:"weekday"`
	Weekend RangeConfig `yaml:"weekend" mapstructure:"weekend"`

	// Longest tolerated run of silent days.
	MaxGapDays int `yaml:"max_gap_days" mapstructure:"max_gap_days"`

	// Time-of-day window assigned timestamps land in.
	Workday WorkdayConfig `yaml:"workday" mapstructure:"workday"`

	// Where artifacts are written.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// Plan archive database location.
	ArchivePath string `yaml:"archive_path" mapstructure:"archive_path"`

	// How many repositories are planned concurrently.
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`
}

type RangeConfig struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

type WorkdayConfig struct {
	StartHour int `yaml:"start_hour" mapstructure:"start_hour"`
	EndHour   int `yaml:"end_hour" mapstructure:"end_hour"`
}

// Default returns the stock configuration: a one-year window, the original
// tool's weekday/weekend bounds, and a week as the longest tolerated gap.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		WindowDays:  365,
		Weekday:     RangeConfig{Min: 2, Max: 6},
		Weekend:     RangeConfig{Min: 6, Max: 10},
		MaxGapDays:  7,
		Workday:     WorkdayConfig{StartHour: 9, EndHour: 18},
		OutputDir:   ".",
		ArchivePath: filepath.Join(homeDir, ".gitspread", "archive.db"),
		Parallelism: 4,
	}
}

// Load reads configuration from the given file (or ~/.gitspread/config.yaml
// when empty), layered over defaults, with GITSPREAD_* environment variables
// taking precedence. A missing config file is not an error; the defaults
// stand.
func Load(path string) (*Config, error) {
	// Pick up a local .env first so its values are visible to viper.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GITSPREAD")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("window_days", def.WindowDays)
	v.SetDefault("email", def.Email)
	v.SetDefault("weekday.min", def.Weekday.Min)
	v.SetDefault("weekday.max", def.Weekday.Max)
	v.SetDefault("weekend.min", def.Weekend.Min)
	v.SetDefault("weekend.max", def.Weekend.Max)
	v.SetDefault("max_gap_days", def.MaxGapDays)
	v.SetDefault("workday.start_hour", def.Workday.StartHour)
	v.SetDefault("workday.end_hour", def.Workday.EndHour)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("archive_path", def.ArchivePath)
	v.SetDefault("parallelism", def.Parallelism)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir, ".gitspread"))
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no run could act on.
func (c *Config) Validate() error {
	if c.WindowDays < 1 {
		return fmt.Errorf("window_days must be positive, got %d", c.WindowDays)
	}
	for name, r := range map[string]RangeConfig{"weekday": c.Weekday, "weekend": c.Weekend} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%s range [%d,%d] is invalid", name, r.Min, r.Max)
		}
	}
	if c.MaxGapDays < 1 {
		return fmt.Errorf("max_gap_days must be at least 1, got %d", c.MaxGapDays)
	}
	if c.Workday.StartHour < 0 || c.Workday.EndHour > 24 || c.Workday.EndHour <= c.Workday.StartHour {
		return fmt.Errorf("workday %d-%d is invalid", c.Workday.StartHour, c.Workday.EndHour)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}
