package cache

import (
	"encoding/json"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps the last device snapshot per host, so reports and
// 'status --cached' work while the device is unreachable.
type SnapshotStore struct {
	cache *Cache
}

// snapshotTTL matches the widest consumer: a report accepts cached
// diagnostics up to 24h old, tighter consumers pass their own maxAge.
const snapshotTTL = 24 * time.Hour

func NewSnapshotStore() (*SnapshotStore, error) {
	c, err := NewCache(snapshotTTL)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{cache: c}, nil
}

func NewSnapshotStoreAt(dir string) (*SnapshotStore, error) {
	c, err := NewCacheAt(dir, snapshotTTL)
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{cache: c}, nil
}

func snapshotKey(host string) string {
	return "snapshot:" + host
}

func (s *SnapshotStore) SaveSnapshot(host string, snap *models.DeviceSnapshot) error {
	return s.cache.Set(snapshotKey(host), snap)
}

func (s *SnapshotStore) LoadSnapshot(host string, maxAge time.Duration) (*models.DeviceSnapshot, error) {
	payload, hit, err := s.cache.Get(snapshotKey(host), maxAge)
	if err != nil {
		return nil, domainErrors.ErrCacheCorrupt.WithError(err)
	}
	if !hit {
		return nil, domainErrors.ErrNoSnapshot.WithContext("host", host)
	}

	var snap models.DeviceSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, domainErrors.ErrCacheCorrupt.WithError(err)
	}
	return &snap, nil
}

// SnapshotAge reports how stale the stored snapshot for host is.
func (s *SnapshotStore) SnapshotAge(host string) (time.Duration, bool) {
	return s.cache.Age(snapshotKey(host))
}
