package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version         int        `toml:"version"`
	ServerURL       string     `toml:"server_url"`
	DataDir         string     `toml:"data_dir"`  // session history database location
	LogFile         string     `toml:"log_file"`
	DefaultCategory string     `toml:"default_category"`
	UISettings      UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Placeholders   int  `toml:"placeholders"` // skeleton rows shown while a replace fetch runs
	ShowSidebar    bool `toml:"show_sidebar"`
	RequestTimeout int  `toml:"request_timeout_seconds"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a new config service rooted at the user config directory
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "recommendi")
	os.MkdirAll(appDir, 0755)

	return &service{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// Load loads the configuration from the default path
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default path
func (s *service) Save(config *Config) error {
	return s.SaveToPath(config, s.filePath)
}

// LoadFromPath loads configuration from a specific path
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Unset fields keep their defaults; an explicit zero is corrected
	if cfg.UISettings.Placeholders < 1 {
		cfg.UISettings.Placeholders = defaultPlaceholders
	}
	if cfg.UISettings.RequestTimeout < 1 {
		cfg.UISettings.RequestTimeout = defaultRequestTimeout
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (s *service) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

const (
	defaultPlaceholders   = 2
	defaultRequestTimeout = 30
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := "."
	if configDir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(configDir, "recommendi")
	}

	return &Config{
		Version:         1,
		ServerURL:       "http://localhost:5000",
		DataDir:         dataDir,
		LogFile:         "recommendi.log",
		DefaultCategory: "Movie",
		UISettings: UISettings{
			Placeholders:   defaultPlaceholders,
			ShowSidebar:    true,
			RequestTimeout: defaultRequestTimeout,
		},
	}
}
