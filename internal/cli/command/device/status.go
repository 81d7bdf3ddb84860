package device

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/cli/completion_helper"
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// StatusCommandFactory builds the 'status' command.
type StatusCommandFactory struct {
	devices *services.DeviceService
}

func NewStatusCommandFactory(devices *services.DeviceService) *StatusCommandFactory {
	return &StatusCommandFactory{devices: devices}
}

func (f *StatusCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "status",
		Aliases: []string{"s"},
		Usage:   t.GetMessage("status_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep polling at the configured scan interval",
			},
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Show the last stored snapshot without touching the device",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the snapshot as JSON",
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t, cfg),
	}
}

func (f *StatusCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		asJSON := cmd.Bool("json")

		if cmd.Bool("cached") {
			snap, err := f.devices.CachedSnapshot(0)
			if err != nil {
				return err
			}
			if !asJSON {
				ui.PrintInfo(t.GetMessage("status_cached_notice", 0, map[string]interface{}{
					"Age": time.Since(snap.FetchedAt).Round(time.Second),
				}))
			}
			return printSnapshot(t, snap, asJSON)
		}

		if cmd.Bool("watch") {
			ui.PrintInfo(t.GetMessage("status_watch_notice", 0, map[string]interface{}{
				"Seconds": cfg.Device.ScanIntervalSeconds,
			}))
			return f.devices.Watch(ctx, func(snap *models.DeviceSnapshot, err error) {
				if err != nil {
					ui.PrintWarning(err.Error())
					return
				}
				_ = printSnapshot(t, snap, asJSON)
			})
		}

		var snap *models.DeviceSnapshot
		err := ui.WithSpinner(t.GetMessage("status_polling", 0, map[string]interface{}{
			"Host": cfg.Device.Host,
		}), func() error {
			var fetchErr error
			snap, fetchErr = f.devices.Snapshot(ctx)
			return fetchErr
		})
		if err != nil {
			return err
		}
		return printSnapshot(t, snap, asJSON)
	}
}

func printSnapshot(t *i18n.Translations, snap *models.DeviceSnapshot, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	ui.PrintSectionBanner(snap.Info.Model)
	ui.PrintKeyValue(t.GetMessage("label_firmware", 0, nil), snap.Info.Firmware)
	if snap.Info.BuildDate != "" {
		ui.PrintKeyValue(t.GetMessage("label_build_date", 0, nil), snap.Info.BuildDate)
	}
	ui.PrintKeyValue(t.GetMessage("label_uptime", 0, nil), snap.Uptime().String())
	ui.PrintKeyValue(t.GetMessage("label_cpu", 0, nil),
		fmt.Sprintf("%d%% (1min avg %d%%)", snap.CPU.Current, snap.CPU.Avg1Min))
	ui.PrintKeyValue(t.GetMessage("label_memory", 0, nil), fmt.Sprintf("%d%%", snap.MemoryUsage))
	ui.PrintKeyValue(t.GetMessage("label_clients", 0, nil),
		fmt.Sprintf("%d (%s: %d, %s: %d)",
			snap.ClientCount(),
			t.GetMessage("label_band24", 0, nil), snap.Clients24G(),
			t.GetMessage("label_band5", 0, nil), snap.Clients5G()))
	if snap.Network.IPAddress != "" {
		ui.PrintKeyValue(t.GetMessage("label_ip", 0, nil), snap.Network.IPAddress)
	}

	for _, radio := range snap.Radios {
		state := "off"
		if radio.Active {
			state = "on"
		}
		ui.PrintKeyValue(radio.Band, fmt.Sprintf("%s, SSIDs: %v", state, radio.SSIDs))
	}

	if snap.Port.Status != "" {
		ui.PrintKeyValue(t.GetMessage("label_port", 0, nil),
			fmt.Sprintf("%s %s, tx %d B/s, rx %d B/s",
				snap.Port.Status, snap.Port.Speed, snap.Port.TxRate, snap.Port.RxRate))
	}
	return nil
}
