package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/venda-crm/venda/internal/models"
)

// Config represents the application configuration
type Config struct {
	Stages          models.StageSet `yaml:"stages"`
	KeyMappings     KeyMappings     `yaml:"key_mappings"`
	Theme           Theme           `yaml:"theme"`
	SimulateLatency bool            `yaml:"simulate_latency"`
}

// Theme holds the display accents not tied to a specific stage.
type Theme struct {
	Accent   string `yaml:"accent"`
	Subtle   string `yaml:"subtle"`
	Danger   string `yaml:"danger"`
	Success  string `yaml:"success"`
	Selected string `yaml:"selected"`
}

// DefaultStages returns the bundled pipeline: the four stages the original
// client shipped with, in board order.
func DefaultStages() models.StageSet {
	return models.StageSet{
		{Title: "Cold Lead", Order: 1, Color: "#3B82F6"},
		{Title: "Hot Lead", Order: 2, Color: "#F97316"},
		{Title: "Estimate Sent", Order: 3, Color: "#EAB308"},
		{Title: "Closed", Order: 4, Color: "#22C55E"},
	}
}

// DefaultTheme returns the default display accents.
func DefaultTheme() Theme {
	return Theme{
		Accent:   "#7C3AED",
		Subtle:   "#6B7280",
		Danger:   "#EF4444",
		Success:  "#22C55E",
		Selected: "#A78BFA",
	}
}

func defaultConfig() *Config {
	return &Config{
		Stages:          DefaultStages(),
		KeyMappings:     DefaultKeyMappings(),
		Theme:           DefaultTheme(),
		SimulateLatency: true,
	}
}

// Load loads config from the user's config directory. Returns the default
// config if the file doesn't exist or the path can't be determined.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a YAML config document, filling missing values with
// defaults.
func Parse(data []byte) (*Config, error) {
	config := &Config{SimulateLatency: true}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return config, nil
}

// Save saves the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// applyDefaults fills in any missing values with defaults
func (c *Config) applyDefaults() {
	if len(c.Stages) == 0 {
		c.Stages = DefaultStages()
	}
	c.KeyMappings.applyDefaults()
	if c.Theme.Accent == "" {
		c.Theme.Accent = DefaultTheme().Accent
	}
	if c.Theme.Subtle == "" {
		c.Theme.Subtle = DefaultTheme().Subtle
	}
	if c.Theme.Danger == "" {
		c.Theme.Danger = DefaultTheme().Danger
	}
	if c.Theme.Success == "" {
		c.Theme.Success = DefaultTheme().Success
	}
	if c.Theme.Selected == "" {
		c.Theme.Selected = DefaultTheme().Selected
	}
}

// getConfigPath returns ~/.config/venda/config.yaml
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "venda", "config.yaml"), nil
}
