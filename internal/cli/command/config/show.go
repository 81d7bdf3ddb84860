package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(t.GetMessage("config_current", 0, nil))

			ui.PrintKeyValue(t.GetMessage("label_config_file", 0, nil), cfg.PathFile)
			ui.PrintKeyValue(t.GetMessage("label_language", 0, nil), cfg.Language)
			ui.PrintKeyValue(t.GetMessage("label_device", 0, nil),
				fmt.Sprintf("%s@%s:%d", cfg.Device.Username, cfg.Device.Host, cfg.Device.Port))
			ui.PrintKeyValue("SSH password", secretStatus(t, cfg.Device.Password, config.EnvSSHPassword))
			ui.PrintKeyValue("Scan interval", strconv.Itoa(cfg.Device.ScanIntervalSeconds)+"s")

			repo := t.GetMessage("config_not_set", 0, nil)
			if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
				repo = cfg.GitHub.Owner + "/" + cfg.GitHub.Repo
			}
			ui.PrintKeyValue(t.GetMessage("label_repository", 0, nil), repo)
			ui.PrintKeyValue("Default template", cfg.GitHub.DefaultTemplate)
			ui.PrintKeyValue(t.GetMessage("label_token", 0, nil), secretStatus(t, cfg.GitHub.Token, config.EnvGitHubToken))

			ui.PrintKeyValue(t.GetMessage("label_api_key", 0, nil), secretStatus(t, cfg.AI.GeminiAPIKey, config.EnvGeminiKey))
			ui.PrintKeyValue("Gemini model", cfg.AI.Model)

			return nil
		},
	}
}

// secretStatus reports where a secret comes from without printing it.
func secretStatus(t *i18n.Translations, fromFile, envVar string) string {
	if fromFile != "" {
		return maskSecret(fromFile)
	}
	if os.Getenv(envVar) != "" {
		return t.GetMessage("config_from_env", 0, map[string]interface{}{"Env": envVar})
	}
	return t.GetMessage("config_not_set", 0, nil)
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
