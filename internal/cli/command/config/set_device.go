package config

import (
	"context"
	"os"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetDeviceCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-device",
		Usage: t.GetMessage("config_set_device_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Access point address",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "SSH port",
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "SSH password (prefer the " + config.EnvSSHPassword + " env var)",
			},
			&cli.IntFlag{
				Name:  "scan-interval",
				Usage: "Watch mode polling interval in seconds",
			},
			&cli.StringFlag{
				Name:  "hass-config",
				Usage: "Home Assistant config dir holding the ha_zyxel manifest",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if host := command.String("host"); host != "" {
				cfg.Device.Host = host
			}
			if port := command.Int("port"); port != 0 {
				cfg.Device.Port = int(port)
			}
			if username := command.String("username"); username != "" {
				cfg.Device.Username = username
			}
			if password := command.String("password"); password != "" {
				cfg.Device.Password = password
			}
			if interval := command.Int("scan-interval"); interval != 0 {
				cfg.Device.ScanIntervalSeconds = int(interval)
			}
			if hassDir := command.String("hass-config"); hassDir != "" {
				cfg.HassConfigDir = hassDir
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_device_updated", 0, map[string]interface{}{
				"Host": cfg.Device.Host,
				"Port": cfg.Device.Port,
			}))
			return nil
		},
	}
}
