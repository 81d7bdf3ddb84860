package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type CachedEntry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (e *CachedEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Cache is a TTL file cache under ~/.zyxelmate/cache, one JSON file per key.
// It backs the last-snapshot fallback and the update check.
type Cache struct {
	cacheDir string
	ttl      time.Duration
}

func NewCache(ttl time.Duration) (*Cache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}
	return NewCacheAt(filepath.Join(homeDir, ".zyxelmate", "cache"), ttl)
}

func NewCacheAt(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}

	c := &Cache{cacheDir: dir, ttl: ttl}
	_ = c.CleanExpired()
	return c, nil
}

// keyFile hashes the key so hosts and other unsanitized strings are safe as
// file names.
func (c *Cache) keyFile(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.cacheDir, hex.EncodeToString(hash[:])+".json")
}

// Get returns the payload for key if it exists and is younger than maxAge.
// A non-positive maxAge falls back to the cache's TTL.
func (c *Cache) Get(key string, maxAge time.Duration) (json.RawMessage, bool, error) {
	if maxAge <= 0 {
		maxAge = c.ttl
	}

	data, err := os.ReadFile(c.keyFile(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading cache: %w", err)
	}

	var cached CachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("error decoding cache entry: %w", err)
	}

	if time.Since(cached.CreatedAt) > maxAge {
		// The caller's maxAge may be tighter than the entry's own TTL, so
		// only drop the file once the entry itself has expired.
		if cached.expired(time.Now()) {
			_ = os.Remove(c.keyFile(key))
		}
		return nil, false, nil
	}

	return cached.Payload, true, nil
}

// Age returns how old the cached entry for key is.
func (c *Cache) Age(key string) (time.Duration, bool) {
	data, err := os.ReadFile(c.keyFile(key))
	if err != nil {
		return 0, false
	}
	var cached CachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		return 0, false
	}
	return time.Since(cached.CreatedAt), true
}

// Set stores the payload for key.
func (c *Cache) Set(key string, payload interface{}) error {
	payloadData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}

	now := time.Now()
	cached := CachedEntry{
		Key:       key,
		Payload:   payloadData,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding cache entry: %w", err)
	}

	if err := os.WriteFile(c.keyFile(key), data, 0644); err != nil {
		return fmt.Errorf("error writing cache: %w", err)
	}
	return nil
}

// CleanExpired removes entries past their own recorded expiry. Consumers
// with different TTLs share the directory, so the sweep must not apply this
// cache's TTL to entries it did not write.
func (c *Cache) CleanExpired() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return fmt.Errorf("error reading cache directory: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(c.cacheDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cached CachedEntry
		if err := json.Unmarshal(data, &cached); err != nil {
			_ = os.Remove(path)
			continue
		}
		if cached.ExpiresAt.IsZero() {
			// entries written before expiries were recorded
			if now.Sub(cached.CreatedAt) > c.ttl {
				_ = os.Remove(path)
			}
			continue
		}
		if cached.expired(now) {
			_ = os.Remove(path)
		}
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return fmt.Errorf("error reading cache directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			_ = os.Remove(filepath.Join(c.cacheDir, entry.Name()))
		}
	}
	return nil
}
