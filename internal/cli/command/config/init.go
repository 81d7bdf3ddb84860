package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return runInitProcess(bufio.NewReader(os.Stdin), cfg, t)
		},
	}
}

func runInitProcess(reader *bufio.Reader, cfg *config.Config, t *i18n.Translations) error {
	fmt.Println(t.GetMessage("init_welcome", 0, nil))
	fmt.Println()

	lang, err := prompt(reader, t.GetMessage("init_prompt_language", 0, map[string]interface{}{"Default": cfg.Language}))
	if err != nil {
		return err
	}
	if lang != "" {
		switch lang {
		case config.LangEN, config.LangES, config.LangFR:
			cfg.Language = lang
		default:
			ui.PrintWarning(t.GetMessage("config_invalid_language", 0, map[string]interface{}{"Lang": lang}))
		}
	}

	host, err := prompt(reader, t.GetMessage("init_prompt_host", 0, map[string]interface{}{"Default": cfg.Device.Host}))
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Device.Host = host
	}

	username, err := prompt(reader, t.GetMessage("init_prompt_username", 0, map[string]interface{}{"Default": cfg.Device.Username}))
	if err != nil {
		return err
	}
	if username != "" {
		cfg.Device.Username = username
	}

	password, err := prompt(reader, t.GetMessage("init_prompt_password", 0, map[string]interface{}{"Env": config.EnvSSHPassword}))
	if err != nil {
		return err
	}
	if password != "" {
		cfg.Device.Password = password
	}

	repoDefault := t.GetMessage("config_not_set", 0, nil)
	if cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		repoDefault = cfg.GitHub.Owner + "/" + cfg.GitHub.Repo
	}
	repo, err := prompt(reader, t.GetMessage("init_prompt_repo", 0, map[string]interface{}{"Default": repoDefault}))
	if err != nil {
		return err
	}
	if repo != "" {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" {
			ui.PrintWarning(t.GetMessage("init_invalid_repo", 0, map[string]interface{}{"Value": repo}))
		} else {
			cfg.GitHub.Owner = owner
			cfg.GitHub.Repo = name
		}
	}

	token, err := prompt(reader, t.GetMessage("init_prompt_token", 0, map[string]interface{}{"Env": config.EnvGitHubToken}))
	if err != nil {
		return err
	}
	if token != "" {
		cfg.GitHub.Token = token
	}

	apiKey, err := prompt(reader, t.GetMessage("init_prompt_gemini", 0, map[string]interface{}{"Env": config.EnvGeminiKey}))
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.AI.GeminiAPIKey = apiKey
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Println()
	ui.PrintSuccess(os.Stdout, t.GetMessage("init_done", 0, map[string]interface{}{"Path": cfg.PathFile}))
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
