// Package config provides configuration loading for the asc CLI.
//
// Precedence, lowest first: DefaultConfig, the YAML file, .env / ASC_*
// environment variables, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
)

// Config represents the complete asc configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Day      DayConfig      `yaml:"day"`
	Log      LogConfig      `yaml:"log"`
	Lifetime LifetimeConfig `yaml:"lifetime"`
	Board    BoardConfig    `yaml:"board"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	// Path to the database file (default: ~/.ascensao.db)
	Path string `yaml:"path"`
}

// DayConfig controls the daily rollover rule.
type DayConfig struct {
	RolloverHour   int `yaml:"rollover_hour"`
	UTCOffsetHours int `yaml:"utc_offset_hours"`
}

type LogConfig struct {
	// Mode is "dev" or "prod"
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// LifetimeConfig controls the startup consistency check of lifetime points.
type LifetimeConfig struct {
	// Repair overwrites the stored counter with the ledger sum when they disagree.
	Repair bool `yaml:"repair"`
}

type BoardConfig struct {
	// Watch reloads the board when the database file changes on disk.
	Watch bool `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Day: DayConfig{
			RolloverHour:   daykey.DefaultRolloverHour,
			UTCOffsetHours: daykey.DefaultOffsetHours,
		},
		Log: LogConfig{
			Mode:  "dev",
			Level: "warn",
		},
		Board: BoardConfig{
			Watch: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Day.RolloverHour < 0 || c.Day.RolloverHour > 23 {
		return fmt.Errorf("day.rollover_hour must be between 0 and 23")
	}
	if c.Day.UTCOffsetHours < -12 || c.Day.UTCOffsetHours > 14 {
		return fmt.Errorf("day.utc_offset_hours must be between -12 and 14")
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("log.mode must be dev or prod")
	}
	return nil
}

// DefaultPath returns ~/.config/ascensao/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "ascensao", "config.yaml"), nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load resolves the effective configuration. An empty path means the default
// location; a missing file there is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg = loaded
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	// .env is optional.
	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ASC_* environment variables.
func (c *Config) ApplyEnv() {
	c.Storage.Path = envString("ASC_DB_PATH", c.Storage.Path)
	c.Day.RolloverHour = envInt("ASC_ROLLOVER_HOUR", c.Day.RolloverHour)
	c.Day.UTCOffsetHours = envInt("ASC_UTC_OFFSET_HOURS", c.Day.UTCOffsetHours)
	c.Log.Mode = envString("ASC_LOG_MODE", c.Log.Mode)
	c.Log.Level = envString("ASC_LOG_LEVEL", c.Log.Level)
	c.Lifetime.Repair = envBool("ASC_LIFETIME_REPAIR", c.Lifetime.Repair)
	c.Board.Watch = envBool("ASC_BOARD_WATCH", c.Board.Watch)
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}
