package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations(config.LangEN, "")
	require.NoError(t, err)
	return trans
}

func newTestChecker(t *testing.T, version string) *VersionChecker {
	t.Helper()
	v := NewVersionChecker(version, testTranslations(t))
	v.store = nil
	return v
}

func TestVersionCheckerUpdateAvailable(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"should detect a newer release", "0.3.0", "v0.4.0", true},
		{"should detect a newer patch", "0.3.0", "0.3.1", true},
		{"should ignore the same version", "0.3.0", "v0.3.0", false},
		{"should ignore an older release", "0.4.0", "v0.3.0", false},
		{"should fall back to inequality for invalid versions", "dev", "v0.4.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestChecker(t, tt.current)
			assert.Equal(t, tt.want, v.UpdateAvailable(tt.latest))
		})
	}
}

func TestVersionCheckerCheckForUpdates(t *testing.T) {
	t.Run("should skip the check when disabled", func(t *testing.T) {
		t.Setenv(EnvDisableUpdateCheck, "1")

		called := false
		v := newTestChecker(t, "0.3.0")
		v.fetchLatest = func(ctx context.Context) (string, error) {
			called = true
			return "v9.9.9", nil
		}

		v.CheckForUpdates(context.Background())

		assert.False(t, called)
	})

	t.Run("should swallow api failures", func(t *testing.T) {
		v := newTestChecker(t, "0.3.0")
		v.fetchLatest = func(ctx context.Context) (string, error) {
			return "", errors.New("rate limited")
		}

		v.CheckForUpdates(context.Background())
	})
}

func TestVersionCheckerLatestVersion(t *testing.T) {
	t.Run("should return the fetched tag", func(t *testing.T) {
		v := newTestChecker(t, "0.3.0")
		v.fetchLatest = func(ctx context.Context) (string, error) {
			return "v0.4.0", nil
		}

		latest, err := v.LatestVersion(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "v0.4.0", latest)
	})

	t.Run("should propagate fetch errors", func(t *testing.T) {
		v := newTestChecker(t, "0.3.0")
		v.fetchLatest = func(ctx context.Context) (string, error) {
			return "", errors.New("network down")
		}

		_, err := v.LatestVersion(context.Background())

		require.Error(t, err)
	})
}
