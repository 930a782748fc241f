// Package config handles configuration for veriwise.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultAPIBase is the analysis service used when nothing else is configured.
const DefaultAPIBase = "http://localhost:8000"

// Environment variables honored by LoadConfig. A .env file in the working
// directory is read first, so either source works.
const (
	EnvAPIBase = "VERIWISE_API_BASE"
	EnvVerbose = "VERIWISE_VERBOSE"
)

// Config represents the user configuration
type Config struct {
	// APIBase is the base URL of the analysis service ({base}/api/analyze).
	APIBase string `json:"api_base"`
	// Verbose enables detailed logging output during operations.
	Verbose bool `json:"verbose"`
	// CopyToClipboard copies rendered results to the clipboard after
	// one-shot queries.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// MarkdownStyle is the glamour style used for free-text result fields
	// ("dark", "light", or a path to a JSON theme).
	MarkdownStyle string `json:"markdown_style"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIBase:         DefaultAPIBase,
		Verbose:         false,
		CopyToClipboard: false,
		MarkdownStyle:   "dark",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".veriwise"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing config file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("failed to parse config file: %w", err)
	}

	return applyEnv(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays environment variables onto cfg. Values from a .env file
// in the working directory are loaded first; real environment wins.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load()

	if base := os.Getenv(EnvAPIBase); base != "" {
		cfg.APIBase = base
	}
	if v := os.Getenv(EnvVerbose); v == "1" || v == "true" {
		cfg.Verbose = true
	}

	return cfg
}
