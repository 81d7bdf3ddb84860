package hass

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, configDir, content string) {
	t.Helper()
	dir := filepath.Join(configDir, "custom_components", "ha_zyxel")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(content), 0644))
}

func TestManifest(t *testing.T) {
	t.Run("should read the manifest from an explicit config dir", func(t *testing.T) {
		configDir := t.TempDir()
		writeManifest(t, configDir, `{"domain":"ha_zyxel","name":"Zyxel NWA50AX","version":"1.2.0"}`)

		manifest, err := NewLocator(configDir).Manifest(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "ha_zyxel", manifest.Domain)
		assert.Equal(t, "1.2.0", manifest.Version)
	})

	t.Run("should honor the HASS_CONFIG env var", func(t *testing.T) {
		configDir := t.TempDir()
		writeManifest(t, configDir, `{"domain":"ha_zyxel","version":"1.3.0"}`)
		t.Setenv(EnvConfigDir, configDir)

		manifest, err := NewLocator("").Manifest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.3.0", manifest.Version)
	})

	t.Run("should prefer the explicit dir over the env var", func(t *testing.T) {
		explicit := t.TempDir()
		writeManifest(t, explicit, `{"version":"2.0.0"}`)
		envDir := t.TempDir()
		writeManifest(t, envDir, `{"version":"1.0.0"}`)
		t.Setenv(EnvConfigDir, envDir)

		manifest, err := NewLocator(explicit).Manifest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", manifest.Version)
	})

	t.Run("should fail typed when no manifest exists", func(t *testing.T) {
		t.Setenv(EnvConfigDir, t.TempDir())

		_, err := NewLocator("").Manifest(context.Background())

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrManifestNotFound.Message, appErr.Message)
	})

	t.Run("should fail typed on invalid JSON", func(t *testing.T) {
		configDir := t.TempDir()
		writeManifest(t, configDir, `{not json`)

		_, err := NewLocator(configDir).Manifest(context.Background())

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeInternal, appErr.Type)
	})
}
