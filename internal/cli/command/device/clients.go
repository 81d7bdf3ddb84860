package device

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// ClientsCommandFactory builds the 'clients' command.
type ClientsCommandFactory struct {
	devices *services.DeviceService
}

func NewClientsCommandFactory(devices *services.DeviceService) *ClientsCommandFactory {
	return &ClientsCommandFactory{devices: devices}
}

func (f *ClientsCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "clients",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("clients_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the station list as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			snap, err := f.devices.Snapshot(ctx)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				data, err := json.MarshalIndent(snap.Clients, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(snap.Clients) == 0 {
				ui.PrintInfo(t.GetMessage("clients_none", 0, nil))
				return nil
			}

			ui.PrintInfo(t.GetMessage("clients_connected", snap.ClientCount(), map[string]interface{}{
				"Count": snap.ClientCount(),
			}))
			fmt.Println()

			bold := color.New(color.FgWhite, color.Bold)
			for _, client := range snap.Clients {
				name := client.MAC
				if client.IP != "" {
					name += "  " + client.IP
				}
				fmt.Printf("  %s\n", bold.Sprint(name))

				details := fmt.Sprintf("%s, %s", client.SSID, client.Band)
				if client.RSSIdBm != 0 {
					details += fmt.Sprintf(", %d dBm (%d%%)", client.RSSIdBm, client.RSSIPercent)
				}
				if client.TxRateMbps > 0 || client.RxRateMbps > 0 {
					details += fmt.Sprintf(", tx %dM rx %dM", client.TxRateMbps, client.RxRateMbps)
				}
				fmt.Printf("    %s\n", ui.Dim.Sprint(details))
			}
			return nil
		},
	}
}
