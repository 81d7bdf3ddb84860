package config

import (
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory builds the 'config' command tree.
type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
			c.newSetLangCommand(t, cfg),
			c.newSetDeviceCommand(t, cfg),
			c.newSetGitHubCommand(t, cfg),
			c.newSetAIKeyCommand(t, cfg),
		},
	}
}
