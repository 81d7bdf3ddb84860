package services

import (
	"context"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/device/zyxel"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
)

// fetchBudget bounds one whole polling pass, the Home Assistant
// coordinator's value.
const fetchBudget = 30 * time.Second

// ClientFactory builds a device client for the configured device. Split out
// so tests can hand the service a scripted client.
type ClientFactory func(cfg *config.Config) ports.DeviceClient

func DefaultClientFactory(cfg *config.Config) ports.DeviceClient {
	return zyxel.NewClient(
		cfg.Device.Host,
		cfg.Device.Port,
		cfg.Device.Username,
		cfg.DevicePassword(),
		zyxel.WithCommandTimeout(time.Duration(cfg.Device.CommandTimeoutSeconds)*time.Second),
	)
}

// DeviceService orchestrates one-shot polls and the watch loop against the
// access point, caching the last good snapshot.
type DeviceService struct {
	cfg     *config.Config
	factory ClientFactory
	store   ports.SnapshotStore
}

func NewDeviceService(cfg *config.Config, factory ClientFactory, store ports.SnapshotStore) *DeviceService {
	if factory == nil {
		factory = DefaultClientFactory
	}
	return &DeviceService{cfg: cfg, factory: factory, store: store}
}

// Snapshot connects, fetches one snapshot and disconnects. A good snapshot
// is saved for the cached fallbacks.
func (s *DeviceService) Snapshot(ctx context.Context) (*models.DeviceSnapshot, error) {
	if s.cfg.DevicePassword() == "" {
		return nil, domainErrors.ErrPasswordMissing
	}

	ctx, cancel := context.WithTimeout(ctx, fetchBudget)
	defer cancel()

	client := s.factory(s.cfg)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = client.Close()
	}()

	snap, err := client.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveSnapshot(client.Host(), snap); err != nil {
			logger.Warn(ctx, "failed to cache snapshot", "error", err)
		}
	}
	return snap, nil
}

// CachedSnapshot returns the stored snapshot for the configured device.
func (s *DeviceService) CachedSnapshot(maxAge time.Duration) (*models.DeviceSnapshot, error) {
	if s.store == nil {
		return nil, domainErrors.ErrNoSnapshot
	}
	client := s.factory(s.cfg)
	return s.store.LoadSnapshot(client.Host(), maxAge)
}

// Reboot sends the reboot command over a fresh connection.
func (s *DeviceService) Reboot(ctx context.Context) error {
	return s.withClient(ctx, func(ctx context.Context, client ports.DeviceClient) error {
		return client.Reboot(ctx)
	})
}

// SetGuestSSID toggles the guest SSID over a fresh connection.
func (s *DeviceService) SetGuestSSID(ctx context.Context, enabled bool) error {
	return s.withClient(ctx, func(ctx context.Context, client ports.DeviceClient) error {
		return client.SetGuestSSID(ctx, enabled)
	})
}

func (s *DeviceService) withClient(ctx context.Context, fn func(context.Context, ports.DeviceClient) error) error {
	if s.cfg.DevicePassword() == "" {
		return domainErrors.ErrPasswordMissing
	}

	client := s.factory(s.cfg)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	return fn(ctx, client)
}

// Watch polls every scan interval until the context ends, reporting each
// result through onTick. Per-tick failures are reported and polling
// continues, exactly like the integration's update coordinator.
func (s *DeviceService) Watch(ctx context.Context, onTick func(*models.DeviceSnapshot, error)) error {
	interval := time.Duration(s.cfg.Device.ScanIntervalSeconds) * time.Second

	snap, err := s.Snapshot(ctx)
	onTick(snap, err)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap, err := s.Snapshot(ctx)
			onTick(snap, err)
		}
	}
}
