package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
)

type (
	Config struct {
		Language string `json:"language"`
		UseEmoji bool   `json:"use_emoji"`
		PathFile string `json:"path_file"`

		Device DeviceConfig `json:"device"`
		GitHub GitHubConfig `json:"github"`
		AI     AIConfig     `json:"ai"`

		// Home Assistant config dir holding custom_components/ha_zyxel.
		// Empty means autodetect.
		HassConfigDir string `json:"hass_config_dir,omitempty"`
	}

	DeviceConfig struct {
		Host                  string `json:"host"`
		Port                  int    `json:"port"`
		Username              string `json:"username"`
		Password              string `json:"password,omitempty"`
		ScanIntervalSeconds   int    `json:"scan_interval_seconds"`
		CommandTimeoutSeconds int    `json:"command_timeout_seconds"`
	}

	GitHubConfig struct {
		Owner           string `json:"owner,omitempty"`
		Repo            string `json:"repo,omitempty"`
		Token           string `json:"token,omitempty"`
		DefaultTemplate string `json:"default_template"`
	}

	AIConfig struct {
		GeminiAPIKey string `json:"gemini_api_key,omitempty"`
		Model        string `json:"model"`
	}
)

const (
	defaultLang           = "en"
	defaultUseEmoji       = true
	defaultHost           = "192.168.1.2"
	defaultPort           = 22
	defaultUsername       = "admin"
	defaultScanInterval   = 60
	defaultCommandTimeout = 15
	defaultTemplate       = "bug_report.md"
	defaultModel          = ModelGeminiV25Flash
)

// Environment fallbacks for secrets. The config file wins when set.
const (
	EnvSSHPassword = "ZYXELMATE_SSH_PASSWORD"
	EnvGitHubToken = "ZYXELMATE_GITHUB_TOKEN"
	EnvGeminiKey   = "GEMINI_API_KEY"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".zyxelmate")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the out-of-the-box configuration, not bound to any
// file.
func DefaultConfig() *Config {
	return &Config{
		Language: defaultLang,
		UseEmoji: defaultUseEmoji,

		Device: DeviceConfig{
			Host:                  defaultHost,
			Port:                  defaultPort,
			Username:              defaultUsername,
			Password:              "",
			ScanIntervalSeconds:   defaultScanInterval,
			CommandTimeoutSeconds: defaultCommandTimeout,
		},
		GitHub: GitHubConfig{
			DefaultTemplate: defaultTemplate,
		},
		AI: AIConfig{
			Model: defaultModel,
		},
	}
}

func createDefaultConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.PathFile = path

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return domainErrors.ErrConfigMissing
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	if config.Device.Port <= 0 || config.Device.Port > 65535 {
		return fmt.Errorf("device port %d is out of range", config.Device.Port)
	}
	if config.Device.ScanIntervalSeconds <= 0 {
		return errors.New("scan_interval_seconds must be greater than 0")
	}
	if config.Device.CommandTimeoutSeconds <= 0 {
		return errors.New("command_timeout_seconds must be greater than 0")
	}
	return nil
}

// DevicePassword returns the SSH password, falling back to ZYXELMATE_SSH_PASSWORD.
func (c *Config) DevicePassword() string {
	if c.Device.Password != "" {
		return c.Device.Password
	}
	return os.Getenv(EnvSSHPassword)
}

// GitHubToken returns the GitHub token, falling back to ZYXELMATE_GITHUB_TOKEN.
func (c *Config) GitHubToken() string {
	if c.GitHub.Token != "" {
		return c.GitHub.Token
	}
	return os.Getenv(EnvGitHubToken)
}

// GeminiAPIKey returns the Gemini key, falling back to GEMINI_API_KEY.
func (c *Config) GeminiAPIKey() string {
	if c.AI.GeminiAPIKey != "" {
		return c.AI.GeminiAPIKey
	}
	return os.Getenv(EnvGeminiKey)
}
