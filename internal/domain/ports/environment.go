package ports

import (
	"context"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// IntegrationLocator finds the installed ha_zyxel integration in the Home
// Assistant config dir.
type IntegrationLocator interface {
	Manifest(ctx context.Context) (*models.Manifest, error)
}

// SnapshotStore persists the last known device snapshot between runs so
// reports can fall back on it when the device is unreachable.
type SnapshotStore interface {
	SaveSnapshot(host string, snap *models.DeviceSnapshot) error
	LoadSnapshot(host string, maxAge time.Duration) (*models.DeviceSnapshot, error)
}
