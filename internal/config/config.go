// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Data file locations
	Data DataConfig `toml:"data"`

	// Tracked set
	Set SetConfig `toml:"set"`

	// Catalog ingestion settings
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Price ingestion settings
	Pricing PricingConfig `toml:"pricing"`

	// REST API settings
	API APIConfig `toml:"api"`
}

// DataConfig contains the data file locations. Empty values resolve to
// defaults under the application directory.
type DataConfig struct {
	CatalogFile    string `toml:"catalog_file"`    // Card catalog JSON file
	CollectionFile string `toml:"collection_file"` // Ownership records JSON file
	DatabasePath   string `toml:"database_path"`   // Price history SQLite database
}

// SetConfig identifies the tracked set.
type SetConfig struct {
	Code string `toml:"code"` // Set code (e.g., "3ed")
}

// ScryfallConfig contains catalog ingestion settings.
type ScryfallConfig struct {
	BaseURL     string `toml:"base_url"`      // API base URL
	RateLimitMS int    `toml:"rate_limit_ms"` // Delay between search requests
}

// PricingConfig contains price ingestion settings.
type PricingConfig struct {
	BaseURL     string `toml:"base_url"`      // API base URL
	RateLimitMS int    `toml:"rate_limit_ms"` // Delay between price requests
}

// APIConfig contains REST API server settings.
type APIConfig struct {
	Port int `toml:"port"` // Listen port
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			CatalogFile:    "",
			CollectionFile: "",
			DatabasePath:   "",
		},
		Set: SetConfig{
			Code: "3ed",
		},
		Scryfall: ScryfallConfig{
			BaseURL:     "https://api.scryfall.com",
			RateLimitMS: 150,
		},
		Pricing: PricingConfig{
			BaseURL:     "https://mpapi.tcgplayer.com",
			RateLimitMS: 500,
		},
		API: APIConfig{
			Port: 8080,
		},
	}
}

// AppDir returns the application directory, creating it if needed.
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".set-tracker")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create application directory: %w", err)
	}

	return dir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from a specific file, falling back to
// defaults for a missing file.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Set.Code == "" {
		return fmt.Errorf("set code cannot be empty")
	}
	if c.Scryfall.RateLimitMS < 0 {
		return fmt.Errorf("scryfall rate limit cannot be negative: %d", c.Scryfall.RateLimitMS)
	}
	if c.Pricing.RateLimitMS < 0 {
		return fmt.Errorf("pricing rate limit cannot be negative: %d", c.Pricing.RateLimitMS)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API port: %d", c.API.Port)
	}
	return nil
}

// CatalogFile resolves the catalog file path, defaulting under the
// application directory.
func (c *Config) CatalogFile() (string, error) {
	return c.resolve(c.Data.CatalogFile, "cards.json")
}

// CollectionFile resolves the collection file path.
func (c *Config) CollectionFile() (string, error) {
	return c.resolve(c.Data.CollectionFile, "collection.json")
}

// DatabasePath resolves the price history database path.
func (c *Config) DatabasePath() (string, error) {
	return c.resolve(c.Data.DatabasePath, "prices.db")
}

func (c *Config) resolve(configured, defaultName string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultName), nil
}

// ScryfallRateLimit returns the catalog ingestion delay as a duration.
func (c *Config) ScryfallRateLimit() time.Duration {
	return time.Duration(c.Scryfall.RateLimitMS) * time.Millisecond
}

// PricingRateLimit returns the price ingestion delay as a duration.
func (c *Config) PricingRateLimit() time.Duration {
	return time.Duration(c.Pricing.RateLimitMS) * time.Millisecond
}
