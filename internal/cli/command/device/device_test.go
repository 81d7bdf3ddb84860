package device

import (
	"context"
	"testing"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func newDeviceTestEnv(t *testing.T, client *services.MockDeviceClient) (*services.DeviceService, *config.Config, *i18n.Translations) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Device.Password = "secret"

	trans, err := i18n.NewTranslations(config.LangEN, "")
	require.NoError(t, err)

	factory := func(*config.Config) ports.DeviceClient { return client }
	return services.NewDeviceService(cfg, factory, nil), cfg, trans
}

func runCommand(t *testing.T, cmd *cli.Command, args ...string) error {
	t.Helper()
	app := &cli.Command{Commands: []*cli.Command{cmd}}
	return app.Run(context.Background(), append([]string{"zyxelmate"}, args...))
}

func sampleSnapshot() *models.DeviceSnapshot {
	return &models.DeviceSnapshot{
		Info:          models.DeviceInfo{Model: "NWA50AX", Firmware: "V6.29(ABYW.2)", BuildDate: "2023-05-05"},
		UptimeSeconds: 106480,
		CPU:           models.CPUStats{Current: 4, Avg1Min: 6},
		MemoryUsage:   41,
		Clients: []models.WifiClient{
			{MAC: "aa:bb:cc:dd:ee:ff", IP: "192.168.1.50", SSID: "Home", Band: "5G", RSSIdBm: -52, RSSIPercent: 80},
		},
		Network: models.NetworkInfo{IPAddress: "192.168.1.2"},
		Radios: []models.RadioInfo{
			{Slot: "slot1", Band: "2.4G", Active: true, SSIDs: []string{"Home"}},
		},
		Port:      models.PortStats{Status: "Up", Speed: "1000M/Full", TxRate: 1200, RxRate: 5400},
		FetchedAt: time.Now(),
	}
}

func connectedClient(snap *models.DeviceSnapshot) *services.MockDeviceClient {
	client := new(services.MockDeviceClient)
	client.On("Connect", mock.Anything).Return(nil)
	client.On("FetchSnapshot", mock.Anything).Return(snap, nil)
	client.On("Host").Return("192.168.1.2:22")
	client.On("Close").Return(nil)
	return client
}

func TestStatusCommand(t *testing.T) {
	t.Run("should poll the device and print the snapshot", func(t *testing.T) {
		client := connectedClient(sampleSnapshot())
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewStatusCommandFactory(devices).CreateCommand(trans, cfg), "status")

		assert.NoError(t, err)
		client.AssertCalled(t, "FetchSnapshot", mock.Anything)
	})

	t.Run("should print the snapshot as json", func(t *testing.T) {
		client := connectedClient(sampleSnapshot())
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewStatusCommandFactory(devices).CreateCommand(trans, cfg), "status", "--json")

		assert.NoError(t, err)
	})

	t.Run("should fail the cached flow when no snapshot was stored", func(t *testing.T) {
		client := new(services.MockDeviceClient)
		client.On("Host").Return("192.168.1.2:22")
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewStatusCommandFactory(devices).CreateCommand(trans, cfg), "status", "--cached")

		assert.Error(t, err)
		client.AssertNotCalled(t, "FetchSnapshot", mock.Anything)
	})
}

func TestClientsCommand(t *testing.T) {
	t.Run("should list connected stations", func(t *testing.T) {
		client := connectedClient(sampleSnapshot())
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewClientsCommandFactory(devices).CreateCommand(trans, cfg), "clients")

		assert.NoError(t, err)
	})

	t.Run("should handle an empty station list", func(t *testing.T) {
		snap := sampleSnapshot()
		snap.Clients = nil
		client := connectedClient(snap)
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewClientsCommandFactory(devices).CreateCommand(trans, cfg), "clients")

		assert.NoError(t, err)
	})
}

func TestRebootCommand(t *testing.T) {
	t.Run("should reboot without prompting when --yes is set", func(t *testing.T) {
		client := new(services.MockDeviceClient)
		client.On("Connect", mock.Anything).Return(nil)
		client.On("Reboot", mock.Anything).Return(nil)
		client.On("Close").Return(nil)
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewRebootCommandFactory(devices).CreateCommand(trans, cfg), "reboot", "--yes")

		assert.NoError(t, err)
		client.AssertCalled(t, "Reboot", mock.Anything)
	})
}

func TestGuestCommand(t *testing.T) {
	t.Run("should enable the guest ssid", func(t *testing.T) {
		client := new(services.MockDeviceClient)
		client.On("Connect", mock.Anything).Return(nil)
		client.On("SetGuestSSID", mock.Anything, true).Return(nil)
		client.On("Close").Return(nil)
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewGuestCommandFactory(devices).CreateCommand(trans, cfg), "guest", "on")

		assert.NoError(t, err)
		client.AssertCalled(t, "SetGuestSSID", mock.Anything, true)
	})

	t.Run("should reject anything but on or off", func(t *testing.T) {
		client := new(services.MockDeviceClient)
		devices, cfg, trans := newDeviceTestEnv(t, client)

		err := runCommand(t, NewGuestCommandFactory(devices).CreateCommand(trans, cfg), "guest", "maybe")

		assert.Error(t, err)
		client.AssertNotCalled(t, "SetGuestSSID", mock.Anything, mock.Anything)
	})
}
