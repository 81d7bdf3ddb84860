package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetAIKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-ai-key",
		Usage: t.GetMessage("config_set_ai_key_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    "Gemini API key (prefer the " + config.EnvGeminiKey + " env var)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Gemini model used to draft reports",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			apiKey := command.String("key")
			if len(apiKey) < 10 {
				return fmt.Errorf("%s", t.GetMessage("config_invalid_api_key", 0, nil))
			}

			model := command.String("model")
			if model != "" && !config.IsSupportedModel(model) {
				return fmt.Errorf("%s", t.GetMessage("config_invalid_model", 0, map[string]interface{}{
					"Model":     model,
					"Supported": strings.Join(config.SupportedModels(), ", "),
				}))
			}

			cfg.AI.GeminiAPIKey = apiKey
			if model != "" {
				cfg.AI.Model = model
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_ai_key_updated", 0, nil))
			return nil
		},
	}
}
