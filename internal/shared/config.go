package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	BackendFile = "file"
	BackendSQL  = "sql"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Database   DatabaseConfig   `toml:"database"`
	Server     ServerConfig     `toml:"server"`
	Validation ValidationConfig `toml:"validation"`
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Backend string     `toml:"backend"`
	File    FileConfig `toml:"file"`
}

// FileConfig contains settings for the file-backed catalog.
type FileConfig struct {
	Path string `toml:"path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL          string `toml:"url"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the web front end.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// ValidationConfig contains record validation settings.
type ValidationConfig struct {
	MinYear int `toml:"min_year"`
}

// Addr returns the listen address of the web front end.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the selected backend is known.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case BackendFile, BackendSQL:
		c.Storage.Backend = strings.ToLower(c.Storage.Backend)
		return nil
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
}

// ApplyEnv overrides configuration from the environment: SHELF_BACKEND and DATABASE_URL.
func (c *Config) ApplyEnv() error {
	if backend := os.Getenv("SHELF_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if url := DatabaseURL(); url != "" {
		c.Database.URL = url
	}
	return c.Validate()
}
