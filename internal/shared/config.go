package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// with environment variables taking precedence for credentials.
type Config struct {
	API    APIConfig    `toml:"api"`
	Client ClientConfig `toml:"client"`
	Export ExportConfig `toml:"export"`
}

// APIConfig contains FluentCRM connection credentials.
//
// BaseURL is the WordPress site root; the REST prefix is appended by the service layer.
type APIConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// ClientConfig contains HTTP client tuning knobs.
type ClientConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// ExportConfig contains defaults for the export command.
type ExportConfig struct {
	OutputDir string `toml:"output_dir"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides credentials with the FLUENT_URL, FLUENT_USER and
// FLUENT_PASSWORD environment variables when set. Environment always wins
// over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FLUENT_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FLUENT_USER"); v != "" {
		c.API.Username = v
	}
	if v := os.Getenv("FLUENT_PASSWORD"); v != "" {
		c.API.Password = v
	}
}

// ValidateCredentials checks that base URL, username and password are all present.
func (c *Config) ValidateCredentials() error {
	if c.API.BaseURL == "" || c.API.Username == "" || c.API.Password == "" {
		return fmt.Errorf("%w: set FLUENT_URL, FLUENT_USER and FLUENT_PASSWORD", ErrMissingCredentials)
	}
	return nil
}
