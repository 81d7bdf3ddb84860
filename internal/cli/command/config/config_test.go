package config

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string) {
	t.Helper()

	tmpConfigPath := filepath.Join(t.TempDir(), "config.json")

	cfg := config.DefaultConfig()
	cfg.PathFile = tmpConfigPath

	translations, err := i18n.NewTranslations(config.LangEN, "")
	require.NoError(t, err)

	return cfg, translations, tmpConfigPath
}

func runConfigSubcommand(t *testing.T, cmd *cli.Command, args ...string) error {
	t.Helper()
	app := &cli.Command{Commands: []*cli.Command{cmd}}
	return app.Run(context.Background(), append([]string{"config"}, args...))
}

func TestSetLangCommand(t *testing.T) {
	t.Run("should persist a supported language", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetLangCommand(translations, cfg), "set-lang", "--lang", "es")

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, config.LangES, loaded.Language)
	})

	t.Run("should reject an unsupported language", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetLangCommand(translations, cfg), "set-lang", "--lang", "de")

		assert.Error(t, err)
		assert.Equal(t, config.LangEN, cfg.Language)
	})
}

func TestSetDeviceCommand(t *testing.T) {
	t.Run("should update only the provided fields", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetDeviceCommand(translations, cfg),
			"set-device", "--host", "10.0.0.5", "--scan-interval", "30")

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", loaded.Device.Host)
		assert.Equal(t, 30, loaded.Device.ScanIntervalSeconds)
		assert.Equal(t, 22, loaded.Device.Port)
		assert.Equal(t, "admin", loaded.Device.Username)
	})

	t.Run("should store the ssh password when given", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetDeviceCommand(translations, cfg),
			"set-device", "-p", "hunter2")

		assert.NoError(t, err)
		assert.Equal(t, "hunter2", cfg.Device.Password)
	})

	t.Run("should persist the Home Assistant config dir", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetDeviceCommand(translations, cfg),
			"set-device", "--hass-config", "/srv/homeassistant/config")

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "/srv/homeassistant/config", loaded.HassConfigDir)
	})
}

func TestSetGitHubCommand(t *testing.T) {
	t.Run("should persist owner, repo and token", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetGitHubCommand(translations, cfg),
			"set-github", "--owner", "ha-zyxel", "--repo", "ha-zyxel", "--token", "ghp_testtoken")

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "ha-zyxel", loaded.GitHub.Owner)
		assert.Equal(t, "ha-zyxel", loaded.GitHub.Repo)
		assert.Equal(t, "ghp_testtoken", loaded.GitHub.Token)
	})

	t.Run("should keep existing values when flags are omitted", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		cfg.GitHub.Owner = "someone"
		cfg.GitHub.Repo = "something"
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetGitHubCommand(translations, cfg),
			"set-github", "--default-template", "unsupported_device.md")

		assert.NoError(t, err)
		assert.Equal(t, "someone", cfg.GitHub.Owner)
		assert.Equal(t, "unsupported_device.md", cfg.GitHub.DefaultTemplate)
	})
}

func TestSetAIKeyCommand(t *testing.T) {
	t.Run("should persist the api key and model", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetAIKeyCommand(translations, cfg),
			"set-ai-key", "--key", "AIzaSyTestKey123", "--model", "gemini-2.5-pro")

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "AIzaSyTestKey123", loaded.AI.GeminiAPIKey)
		assert.Equal(t, "gemini-2.5-pro", loaded.AI.Model)
	})

	t.Run("should reject a key that is too short", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetAIKeyCommand(translations, cfg),
			"set-ai-key", "--key", "short")

		assert.Error(t, err)
		assert.Empty(t, cfg.AI.GeminiAPIKey)
	})

	t.Run("should reject an unsupported model", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newSetAIKeyCommand(translations, cfg),
			"set-ai-key", "--key", "AIzaSyTestKey123", "--model", "gemini-1.0-ultra")

		assert.Error(t, err)
		assert.Equal(t, config.ModelGeminiV25Flash, cfg.AI.Model)
	})
}

func TestShowCommand(t *testing.T) {
	t.Run("should run against a default config", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		err := runConfigSubcommand(t, factory.newShowCommand(translations, cfg), "show")

		assert.NoError(t, err)
	})
}

func TestMaskSecret(t *testing.T) {
	t.Run("should keep only the tail visible", func(t *testing.T) {
		assert.Equal(t, "****oken", maskSecret("ghp_secrettoken"))
	})

	t.Run("should hide short secrets entirely", func(t *testing.T) {
		assert.Equal(t, "****", maskSecret("abc"))
	})
}

func TestInitProcess(t *testing.T) {
	t.Run("should apply answers and save the config", func(t *testing.T) {
		cfg, translations, tmpConfigPath := setupConfigTest(t)

		input := strings.Join([]string{
			"fr",                // language
			"192.168.50.1",      // host
			"",                  // username, keep default
			"secret",            // password
			"ha-zyxel/ZyxelHA",  // repo
			"",                  // token
			"AIzaSyTestKey123",  // gemini key
		}, "\n") + "\n"

		err := runInitProcess(bufio.NewReader(strings.NewReader(input)), cfg, translations)

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(tmpConfigPath)
		require.NoError(t, err)
		assert.Equal(t, config.LangFR, loaded.Language)
		assert.Equal(t, "192.168.50.1", loaded.Device.Host)
		assert.Equal(t, "admin", loaded.Device.Username)
		assert.Equal(t, "secret", loaded.Device.Password)
		assert.Equal(t, "ha-zyxel", loaded.GitHub.Owner)
		assert.Equal(t, "ZyxelHA", loaded.GitHub.Repo)
		assert.Empty(t, loaded.GitHub.Token)
		assert.Equal(t, "AIzaSyTestKey123", loaded.AI.GeminiAPIKey)
	})

	t.Run("should keep defaults on empty input", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		input := strings.Repeat("\n", 7)
		err := runInitProcess(bufio.NewReader(strings.NewReader(input)), cfg, translations)

		assert.NoError(t, err)
		assert.Equal(t, config.LangEN, cfg.Language)
		assert.Equal(t, "192.168.1.2", cfg.Device.Host)
	})

	t.Run("should warn and skip a malformed repository", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		input := "\n\n\n\nnot-a-repo\n\n\n"
		err := runInitProcess(bufio.NewReader(strings.NewReader(input)), cfg, translations)

		assert.NoError(t, err)
		assert.Empty(t, cfg.GitHub.Owner)
		assert.Empty(t, cfg.GitHub.Repo)
	})
}
