package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvDBPath  = "RACEPREP_DB_PATH"
	EnvDebug   = "RACEPREP_DEBUG"
	EnvLogFile = "RACEPREP_LOG_FILE"
	EnvAddr    = "RACEPREP_ADDR"
)

const configDirName = ".raceprep"

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Log      LogConfig      `json:"log"`
	Server   ServerConfig   `json:"server"`
	Defaults DefaultsConfig `json:"defaults"`
	Display  DisplayConfig  `json:"display"`
}

// StorageConfig holds the database location
type StorageConfig struct {
	DBPath string `json:"db_path"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Debug bool   `json:"debug"`
	File  string `json:"file"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Addr string `json:"addr"`
}

// DefaultsConfig pre-fills form fields the runner has not set
type DefaultsConfig struct {
	Surface    string `json:"surface"`
	Experience string `json:"experience"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = "."
	}

	return Config{
		Storage: StorageConfig{
			DBPath: filepath.Join(dir, "raceprep.db"),
		},
		Log: LogConfig{
			File: filepath.Join(dir, "raceprep.log"),
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Defaults: DefaultsConfig{
			Surface:    "Road",
			Experience: "Intermediate",
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Load reads the configuration from ~/.raceprep/config.json and applies
// environment overrides, including those from a .env file
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = defaults.Storage.DBPath
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Defaults.Surface == "" {
		cfg.Defaults.Surface = defaults.Defaults.Surface
	}
	if cfg.Defaults.Experience == "" {
		cfg.Defaults.Experience = defaults.Defaults.Experience
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv loads a .env file from the working directory when one exists and
// lets RACEPREP_* variables override the file settings
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env file: %w", err)
	}

	if v := os.Getenv(EnvDBPath); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean, got %q", EnvDebug, v)
		}
		c.Log.Debug = debug
	}

	return nil
}

// Save writes the configuration to ~/.raceprep/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	example := DefaultConfig()
	return SaveTo(path, &example)
}

// Validate checks the settings that have a fixed set of values
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path is required")
	}

	if c.Defaults.Surface != "" && c.Defaults.Surface != "Road" && c.Defaults.Surface != "Trail" {
		return fmt.Errorf("defaults.surface must be \"Road\" or \"Trail\", got %q", c.Defaults.Surface)
	}

	switch c.Defaults.Experience {
	case "", "Beginner", "Intermediate", "Advanced":
	default:
		return fmt.Errorf("defaults.experience must be \"Beginner\", \"Intermediate\" or \"Advanced\", got %q", c.Defaults.Experience)
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}
