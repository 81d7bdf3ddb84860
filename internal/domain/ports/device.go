package ports

import (
	"context"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// CommandRunner executes one CLI command on the access point and returns its
// raw output.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// DeviceClient is the SSH surface the services consume.
type DeviceClient interface {
	// Connect dials the access point and authenticates
	Connect(ctx context.Context) error

	// FetchSnapshot runs the whole polling command set. Individual command
	// failures degrade to zero values, only a dead connection is an error.
	FetchSnapshot(ctx context.Context) (*models.DeviceSnapshot, error)

	// Reboot restarts the access point
	Reboot(ctx context.Context) error

	// SetGuestSSID enables or disables the guest SSID by toggling its
	// schedule profile
	SetGuestSSID(ctx context.Context, enabled bool) error

	// Host returns the host:port this client talks to
	Host() string

	Close() error
}
