package hass

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
)

var _ ports.IntegrationLocator = (*Locator)(nil)

// EnvConfigDir overrides the Home Assistant config dir discovery.
const EnvConfigDir = "HASS_CONFIG"

const manifestRelPath = "custom_components/ha_zyxel/manifest.json"

// Locator finds the installed ha_zyxel integration and reads its manifest,
// mainly to pre-fill the 'Integration version' section of bug reports.
type Locator struct {
	// configDir, when set, skips discovery. Comes from config or --hass-config.
	configDir string
}

func NewLocator(configDir string) *Locator {
	return &Locator{configDir: configDir}
}

// candidateDirs lists the places a Home Assistant config dir usually lives:
// the container path, then the classic home-dir installs.
func (l *Locator) candidateDirs() []string {
	if l.configDir != "" {
		return []string{l.configDir}
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return []string{env}
	}

	dirs := []string{"/config"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".homeassistant"),
			filepath.Join(home, "homeassistant"),
		)
	}
	return dirs
}

// Manifest locates and decodes the ha_zyxel manifest.json.
func (l *Locator) Manifest(ctx context.Context) (*models.Manifest, error) {
	for _, dir := range l.candidateDirs() {
		path := filepath.Join(dir, manifestRelPath)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug(ctx, "no manifest here", "path", path)
			continue
		}

		var manifest models.Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, domainErrors.NewAppError(domainErrors.TypeInternal, "ha_zyxel manifest.json is not valid JSON", err).
				WithContext("path", path)
		}

		logger.Debug(ctx, "found integration manifest", "path", path, "version", manifest.Version)
		return &manifest, nil
	}

	return nil, domainErrors.ErrManifestNotFound
}
