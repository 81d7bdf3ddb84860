package zyxel

import (
	"context"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
)

// The command set the Home Assistant integration validated against firmware
// V7.10(ABYW.3). Order matters only for readability of --debug logs.
const (
	cmdVersion    = "show version"
	cmdUptime     = "show system uptime"
	cmdCPU        = "show cpu all"
	cmdMemory     = "show mem status"
	cmdStations   = "show wireless-hal station info"
	cmdInterfaces = "show interface all"
	cmdWLAN       = "show wlan all"
	cmdPort       = "show port status"
	cmdReboot     = "reboot"
)

// FetchSnapshot runs the whole polling command set. A command that fails or
// times out leaves its zero values in the snapshot, only a connection that
// never produced any output at all is treated as fatal.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.DeviceSnapshot, error) {
	snap := &models.DeviceSnapshot{FetchedAt: time.Now()}
	succeeded := 0

	run := func(command string, parse func(string)) {
		output, err := c.Run(ctx, command)
		if err != nil {
			logger.Warn(ctx, "device command failed", "command", command, "error", err)
			return
		}
		parse(output)
		succeeded++
	}

	run(cmdVersion, func(out string) { snap.Info = ParseVersion(out) })
	run(cmdUptime, func(out string) { snap.UptimeSeconds = ParseUptime(out) })
	run(cmdCPU, func(out string) { snap.CPU = ParseCPU(out) })
	run(cmdMemory, func(out string) { snap.MemoryUsage = ParseMemory(out) })
	run(cmdStations, func(out string) { snap.Clients = ParseStations(out) })
	run(cmdInterfaces, func(out string) { snap.Network = ParseInterfaces(out) })
	run(cmdWLAN, func(out string) { snap.Radios = ParseWLAN(out) })
	run(cmdPort, func(out string) { snap.Port = ParsePortStatus(out) })

	if succeeded == 0 {
		return nil, domainErrors.ErrDeviceUnreachable.WithError(ctx.Err()).WithContext("host", c.Host())
	}

	logger.Debug(ctx, "snapshot fetched",
		"host", c.Host(),
		"commands_ok", succeeded,
		"clients", len(snap.Clients),
	)
	return snap, nil
}

// Reboot restarts the access point. The device closes the connection while
// the command is in flight, so transport errors after sending are expected.
func (c *Client) Reboot(ctx context.Context) error {
	_, err := c.Run(ctx, cmdReboot)
	return err
}

// SetGuestSSID toggles the Guest profile's schedule: removing the schedule
// keeps the SSID always on, restoring it hands control back to the
// configured time windows.
func (c *Client) SetGuestSSID(ctx context.Context, enabled bool) error {
	schedule := "ssid-schedule"
	if enabled {
		schedule = "no ssid-schedule"
	}

	commands := []string{
		"configure terminal",
		"wlan-ssid-profile Guest",
		schedule,
		"exit",
		"write",
	}

	for _, command := range commands {
		if _, err := c.Run(ctx, command); err != nil {
			return err
		}
		if err := c.pause(ctx, configurePause); err != nil {
			return err
		}
	}

	logger.Info(ctx, "guest SSID updated", "enabled", enabled)
	return nil
}
