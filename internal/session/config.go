// Package session loads configuration and wires one shell session:
// registry, storage backend, single-writer lock, logger and metrics export.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

// Config holds all session configuration.
type Config struct {
	Console ConsoleConfig `toml:"console"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// ConsoleConfig controls the interactive shell.
type ConsoleConfig struct {
	Prompt string `toml:"prompt" env:"HBNB_PROMPT"`
}

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	Driver string `toml:"driver" env:"HBNB_STORAGE_DRIVER"`
	Dir    string `toml:"dir" env:"HBNB_STORAGE_DIR"`
	File   string `toml:"file" env:"HBNB_STORAGE_FILE"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `toml:"level" env:"HBNB_LOG_LEVEL"`
	Format string `toml:"format" env:"HBNB_LOG_FORMAT"`
	File   string `toml:"file" env:"HBNB_LOG_FILE"`
}

// MetricsConfig controls metrics export. An empty textfile disables it.
type MetricsConfig struct {
	Textfile string `toml:"textfile" env:"HBNB_METRICS_TEXTFILE"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Console: ConsoleConfig{Prompt: "(hbnb) "},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Dir:    hbnbHome(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig reads $HBNB_HOME/config.toml over the defaults, then applies
// environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes the config to $HBNB_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports settings no session can start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverJSON:
	default:
		return fmt.Errorf("storage driver: unsupported value %q", c.Storage.Driver)
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage dir: must not be empty")
	}
	return nil
}

// StoragePath resolves the backend file. A relative file is taken inside
// the storage dir; an empty one gets the driver's default name.
func (c Config) StoragePath() string {
	file := c.Storage.File
	if file == "" {
		if c.Storage.Driver == DriverJSON {
			file = "file.json"
		} else {
			file = "hbnb.db"
		}
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Storage.Dir, file)
}

// LockPath is the single-writer lock guarding the storage dir.
func (c Config) LockPath() string {
	return filepath.Join(c.Storage.Dir, "hbnb.lock")
}

// ConfigPath returns the config file location.
func ConfigPath() string {
	return filepath.Join(hbnbHome(), "config.toml")
}

// hbnbHome returns the hbnb data directory.
func hbnbHome() string {
	if dir := os.Getenv("HBNB_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hbnb")
}
