package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Overlay window settings
	Overlay OverlayConfig `yaml:"overlay"`

	// Click-through tracker settings
	ClickThrough ClickThroughConfig `yaml:"click_through"`

	// Log output settings
	Log LogConfig `yaml:"log"`
}

// OverlayConfig holds overlay window settings
type OverlayConfig struct {
	Title   string `yaml:"title"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Visible bool   `yaml:"visible"`
	// RecoveryInterval is the period of the full visibility recovery; 0 disables it.
	RecoveryInterval time.Duration `yaml:"recovery_interval"`
}

// ClickThroughConfig tunes the cursor tracker and its watchdog.
type ClickThroughConfig struct {
	PollInterval     time.Duration `yaml:"poll_interval"`
	WatchdogInterval time.Duration `yaml:"watchdog_interval"`
	Opacity          uint8         `yaml:"opacity"`
}

// WatchdogTicks converts the watchdog interval to a number of poll ticks.
func (c ClickThroughConfig) WatchdogTicks() uint32 {
	if c.PollInterval <= 0 || c.WatchdogInterval <= 0 {
		return 600
	}
	ticks := c.WatchdogInterval / c.PollInterval
	if ticks < 1 {
		return 1
	}
	return uint32(ticks)
}

// LogConfig holds log output settings
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string
}

// New creates a new config service
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".dictation-overlay")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return open(filepath.Join(configDir, "config.yaml"), configDir)
}

func open(configPath, configDir string) (*Service, error) {
	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(configDir),
	}

	// Load existing config if it exists, otherwise create a default config file
	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig(configDir string) *Config {
	return &Config{
		Overlay: OverlayConfig{
			Title:   "Dictation Overlay",
			X:       100,
			Y:       100,
			Width:   420,
			Height:  160,
			Visible: true,
		},
		ClickThrough: ClickThroughConfig{
			PollInterval:     50 * time.Millisecond,
			WatchdogInterval: 30 * time.Second,
			Opacity:          255,
		},
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(configDir, "overlay.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// normalize replaces zero or out-of-range values with defaults.
func (c *Config) normalize(defaults *Config) {
	if c.Overlay.Title == "" {
		c.Overlay.Title = defaults.Overlay.Title
	}
	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 {
		c.Overlay.Width = defaults.Overlay.Width
		c.Overlay.Height = defaults.Overlay.Height
	}
	if c.Overlay.RecoveryInterval < 0 {
		c.Overlay.RecoveryInterval = 0
	}
	if c.ClickThrough.PollInterval <= 0 {
		c.ClickThrough.PollInterval = defaults.ClickThrough.PollInterval
	}
	if c.ClickThrough.WatchdogInterval <= 0 {
		c.ClickThrough.WatchdogInterval = defaults.ClickThrough.WatchdogInterval
	}
	if c.ClickThrough.Opacity == 0 {
		c.ClickThrough.Opacity = defaults.ClickThrough.Opacity
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Get returns the current configuration
func (s *Service) Get() *Config {
	return s.config
}

// Set updates the configuration
func (s *Service) Set(config *Config) {
	s.config = config
}

// Load loads configuration from file
func (s *Service) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	defaults := getDefaultConfig(filepath.Dir(s.filePath))
	if err := yaml.Unmarshal(data, s.config); err != nil {
		return err
	}
	s.config.normalize(defaults)
	return nil
}

// Save saves configuration to file
func (s *Service) Save() error {
	data, err := yaml.Marshal(s.config)
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// UpdateOverlay updates overlay configuration
func (s *Service) UpdateOverlay(overlay OverlayConfig) error {
	s.config.Overlay = overlay
	return s.Save()
}

// UpdateClickThrough updates click-through configuration
func (s *Service) UpdateClickThrough(ct ClickThroughConfig) error {
	s.config.ClickThrough = ct
	return s.Save()
}
