package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create default config on first load", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Language != defaultLang {
			t.Errorf("Language = %v, want %v", cfg.Language, defaultLang)
		}
		if cfg.Device.Host != defaultHost {
			t.Errorf("Device.Host = %v, want %v", cfg.Device.Host, defaultHost)
		}
		if cfg.Device.Port != defaultPort {
			t.Errorf("Device.Port = %v, want %v", cfg.Device.Port, defaultPort)
		}
		if cfg.Device.Username != defaultUsername {
			t.Errorf("Device.Username = %v, want %v", cfg.Device.Username, defaultUsername)
		}
		if cfg.Device.ScanIntervalSeconds != defaultScanInterval {
			t.Errorf("ScanIntervalSeconds = %v, want %v", cfg.Device.ScanIntervalSeconds, defaultScanInterval)
		}
		if cfg.GitHub.DefaultTemplate != defaultTemplate {
			t.Errorf("DefaultTemplate = %v, want %v", cfg.GitHub.DefaultTemplate, defaultTemplate)
		}

		if _, err := os.Stat(filepath.Join(tmpDir, ".zyxelmate", "config.json")); err != nil {
			t.Errorf("expected config file to be created: %v", err)
		}
	})

	t.Run("should load an existing config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		saved := &Config{
			Language: "es",
			UseEmoji: false,
			PathFile: configPath,
			Device: DeviceConfig{
				Host:                  "10.0.0.5",
				Port:                  2222,
				Username:              "admin",
				ScanIntervalSeconds:   30,
				CommandTimeoutSeconds: 10,
			},
		}
		data, _ := json.MarshalIndent(saved, "", "  ")
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Language != "es" {
			t.Errorf("Language = %v, want es", cfg.Language)
		}
		if cfg.Device.Host != "10.0.0.5" {
			t.Errorf("Device.Host = %v, want 10.0.0.5", cfg.Device.Host)
		}
		if cfg.Device.Port != 2222 {
			t.Errorf("Device.Port = %v, want 2222", cfg.Device.Port)
		}
	})

	t.Run("should reject invalid configuration", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		bad := &Config{
			Language: "",
			Device:   DeviceConfig{Port: -1},
		}
		data, _ := json.MarshalIndent(bad, "", "  ")
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected an error for invalid configuration")
		}
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configPath, []byte("{malformed json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected an error for malformed JSON")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should validate before saving", func(t *testing.T) {
		cfg := &Config{
			Language: "",
			Device:   DeviceConfig{Port: 22, ScanIntervalSeconds: 60, CommandTimeoutSeconds: 15},
		}

		if err := SaveConfig(cfg); err == nil {
			t.Error("expected an error when saving an invalid configuration")
		}
	})

	t.Run("should fail without a file path", func(t *testing.T) {
		cfg := &Config{
			Language: "en",
			Device:   DeviceConfig{Port: 22, ScanIntervalSeconds: 60, CommandTimeoutSeconds: 15},
		}

		err := SaveConfig(cfg)
		if err == nil {
			t.Error("expected an error when PathFile is empty")
		}
		if !errors.Is(err, domainErrors.ErrConfigMissing) {
			t.Errorf("expected ErrConfigMissing, got %v", err)
		}
	})

	t.Run("should save and round-trip the configuration", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		cfg := &Config{
			Language: "fr",
			UseEmoji: true,
			PathFile: configPath,
			Device: DeviceConfig{
				Host:                  "192.168.1.3",
				Port:                  22,
				Username:              "admin",
				Password:              "hunter2",
				ScanIntervalSeconds:   45,
				CommandTimeoutSeconds: 20,
			},
			GitHub: GitHubConfig{Owner: "ha-zyxel", Repo: "ha_zyxel", DefaultTemplate: "bug_report.md"},
		}

		if err := SaveConfig(cfg); err != nil {
			t.Fatalf("SaveConfig() error = %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if loaded.Language != "fr" {
			t.Errorf("Language = %v, want fr", loaded.Language)
		}
		if loaded.Device.Password != "hunter2" {
			t.Errorf("Device.Password = %v, want hunter2", loaded.Device.Password)
		}
		if loaded.GitHub.Owner != "ha-zyxel" {
			t.Errorf("GitHub.Owner = %v, want ha-zyxel", loaded.GitHub.Owner)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	valid := DeviceConfig{Host: defaultHost, Port: 22, Username: "admin", ScanIntervalSeconds: 60, CommandTimeoutSeconds: 15}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  &Config{Language: "en", Device: valid},
			wantErr: false,
		},
		{
			name:    "empty language",
			config:  &Config{Language: "", Device: valid},
			wantErr: true,
		},
		{
			name:    "port out of range",
			config:  &Config{Language: "en", Device: DeviceConfig{Port: 70000, ScanIntervalSeconds: 60, CommandTimeoutSeconds: 15}},
			wantErr: true,
		},
		{
			name:    "non-positive scan interval",
			config:  &Config{Language: "en", Device: DeviceConfig{Port: 22, ScanIntervalSeconds: 0, CommandTimeoutSeconds: 15}},
			wantErr: true,
		},
		{
			name:    "non-positive command timeout",
			config:  &Config{Language: "en", Device: DeviceConfig{Port: 22, ScanIntervalSeconds: 60, CommandTimeoutSeconds: -5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecretFallbacks(t *testing.T) {
	t.Run("should prefer the config file over the environment", func(t *testing.T) {
		t.Setenv(EnvSSHPassword, "from-env")

		cfg := &Config{Device: DeviceConfig{Password: "from-file"}}
		if got := cfg.DevicePassword(); got != "from-file" {
			t.Errorf("DevicePassword() = %v, want from-file", got)
		}
	})

	t.Run("should fall back to the environment when unset", func(t *testing.T) {
		t.Setenv(EnvGitHubToken, "ghp_env")

		cfg := &Config{}
		if got := cfg.GitHubToken(); got != "ghp_env" {
			t.Errorf("GitHubToken() = %v, want ghp_env", got)
		}
	})

	t.Run("should read the Gemini key from GEMINI_API_KEY", func(t *testing.T) {
		t.Setenv(EnvGeminiKey, "AIza-env")

		cfg := &Config{}
		if got := cfg.GeminiAPIKey(); got != "AIza-env" {
			t.Errorf("GeminiAPIKey() = %v, want AIza-env", got)
		}
	})
}
