package device

import (
	"context"
	"fmt"
	"os"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// GuestCommandFactory builds the 'guest' command.
type GuestCommandFactory struct {
	devices *services.DeviceService
}

func NewGuestCommandFactory(devices *services.DeviceService) *GuestCommandFactory {
	return &GuestCommandFactory{devices: devices}
}

func (f *GuestCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "guest",
		Usage:     t.GetMessage("guest_command_usage", 0, nil),
		ArgsUsage: "<on|off>",
		ShellComplete: func(ctx context.Context, cmd *cli.Command) {
			os.Stdout.WriteString("on\noff\n")
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			state := cmd.Args().First()
			if state != "on" && state != "off" {
				return fmt.Errorf("%s", t.GetMessage("guest_invalid_state", 0, map[string]interface{}{
					"State": state,
				}))
			}
			enabled := state == "on"

			if err := f.devices.SetGuestSSID(ctx, enabled); err != nil {
				return err
			}

			if enabled {
				ui.PrintSuccess(os.Stdout, t.GetMessage("guest_enabled", 0, nil))
			} else {
				ui.PrintSuccess(os.Stdout, t.GetMessage("guest_disabled", 0, nil))
			}
			return nil
		},
	}
}
