package config

import (
	"context"
	"os"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetGitHubCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-github",
		Usage: t.GetMessage("config_set_github_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "owner",
				Aliases: []string{"o"},
				Usage:   "Repository owner",
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Repository name",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Personal access token (prefer the " + config.EnvGitHubToken + " env var)",
			},
			&cli.StringFlag{
				Name:  "default-template",
				Usage: "Template used when 'report' gets no --template flag",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if owner := command.String("owner"); owner != "" {
				cfg.GitHub.Owner = owner
			}
			if repo := command.String("repo"); repo != "" {
				cfg.GitHub.Repo = repo
			}
			if token := command.String("token"); token != "" {
				cfg.GitHub.Token = token
			}
			if tmpl := command.String("default-template"); tmpl != "" {
				cfg.GitHub.DefaultTemplate = tmpl
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_github_updated", 0, map[string]interface{}{
				"Owner": cfg.GitHub.Owner,
				"Repo":  cfg.GitHub.Repo,
			}))
			return nil
		},
	}
}
