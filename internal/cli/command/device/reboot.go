package device

import (
	"context"
	"os"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/cli/completion_helper"
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// RebootCommandFactory builds the 'reboot' command.
type RebootCommandFactory struct {
	devices *services.DeviceService
}

func NewRebootCommandFactory(devices *services.DeviceService) *RebootCommandFactory {
	return &RebootCommandFactory{devices: devices}
}

func (f *RebootCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "reboot",
		Usage: t.GetMessage("reboot_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") {
				prompt := t.GetMessage("reboot_confirm_prompt", 0, map[string]interface{}{
					"Host": cfg.Device.Host,
				})
				if !ui.AskConfirmation(strings.TrimSuffix(prompt, " (y/N): ")) {
					ui.PrintInfo(t.GetMessage("operation_cancelled", 0, nil))
					return nil
				}
			}

			if err := f.devices.Reboot(ctx); err != nil {
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("reboot_sent", 0, nil))
			return nil
		},
	}
}
