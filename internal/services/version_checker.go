package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/cache"
	"github.com/google/go-github/v66/github"
	"golang.org/x/mod/semver"
)

const (
	releaseOwner = "ha-zyxel"
	releaseRepo  = "ZyxelMate"

	// EnvDisableUpdateCheck suppresses the background release lookup.
	EnvDisableUpdateCheck = "ZYXELMATE_DISABLE_UPDATE_CHECK"

	updateCacheKey = "update:latest-release"
	updateCacheTTL = 24 * time.Hour
)

// VersionChecker compares the running build against the latest published
// release and nudges the user when it is behind.
type VersionChecker struct {
	currentVersion string
	trans          *i18n.Translations
	store          *cache.Cache

	// fetchLatest hits the releases API, swapped out in tests
	fetchLatest func(ctx context.Context) (string, error)
}

// VersionCheckerOption customizes a VersionChecker.
type VersionCheckerOption func(*VersionChecker)

// WithReleaseFetcher overrides the releases API lookup.
func WithReleaseFetcher(fetch func(ctx context.Context) (string, error)) VersionCheckerOption {
	return func(v *VersionChecker) {
		v.fetchLatest = fetch
	}
}

func NewVersionChecker(version string, trans *i18n.Translations, opts ...VersionCheckerOption) *VersionChecker {
	store, err := cache.NewCache(updateCacheTTL)
	if err != nil {
		store = nil
	}
	v := &VersionChecker{
		currentVersion: version,
		trans:          trans,
		store:          store,
	}
	v.fetchLatest = v.fetchLatestRelease
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CheckForUpdates is the background check run on every invocation. It is
// silent on any failure: a broken network must never get in the way of the
// command the user actually ran.
func (v *VersionChecker) CheckForUpdates(ctx context.Context) {
	if os.Getenv(EnvDisableUpdateCheck) != "" {
		return
	}

	if latest, ok := v.cachedLatest(); ok {
		if v.isUpdateAvailable(latest) {
			v.printUpdateNotification(latest)
		}
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	latest, err := v.fetchLatest(ctx)
	if err != nil {
		return
	}
	v.saveLatest(latest)

	if v.isUpdateAvailable(latest) {
		v.printUpdateNotification(latest)
	}
}

// LatestVersion is the explicit 'zyxelmate update' path: always hits the API.
func (v *VersionChecker) LatestVersion(ctx context.Context) (string, error) {
	latest, err := v.fetchLatest(ctx)
	if err != nil {
		return "", err
	}
	v.saveLatest(latest)
	return latest, nil
}

// UpdateAvailable reports whether latest is newer than the running build.
func (v *VersionChecker) UpdateAvailable(latest string) bool {
	return v.isUpdateAvailable(latest)
}

// UpdateCLI reinstalls via the Go toolchain when the binary came from it,
// otherwise points at the releases page.
func (v *VersionChecker) UpdateCLI(ctx context.Context) error {
	if !v.installedViaGo() {
		return fmt.Errorf("%s", v.trans.GetMessage("update_manual_install", 0, map[string]interface{}{
			"URL": fmt.Sprintf("https://github.com/%s/%s/releases/latest", releaseOwner, releaseRepo),
		}))
	}

	if _, err := exec.LookPath("go"); err != nil {
		return fmt.Errorf("%s", v.trans.GetMessage("update_go_not_found", 0, nil))
	}

	cmd := exec.CommandContext(ctx, "go", "install",
		fmt.Sprintf("github.com/%s/%s/cmd/zyxelmate@latest", releaseOwner, releaseRepo))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %s", v.trans.GetMessage("update_error", 0, nil), string(output))
	}
	return nil
}

func (v *VersionChecker) fetchLatestRelease(ctx context.Context) (string, error) {
	client := github.NewClient(nil)
	release, _, err := client.Repositories.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return "", err
	}
	return release.GetTagName(), nil
}

func (v *VersionChecker) installedViaGo() bool {
	execPath, err := os.Executable()
	if err != nil {
		return false
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" && strings.HasPrefix(execPath, gopath) {
		return true
	}
	if gobin := os.Getenv("GOBIN"); gobin != "" && strings.HasPrefix(execPath, gobin) {
		return true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return strings.HasPrefix(execPath, home+"/go/bin")
}

func (v *VersionChecker) cachedLatest() (string, bool) {
	if v.store == nil {
		return "", false
	}
	raw, ok, err := v.store.Get(updateCacheKey, updateCacheTTL)
	if err != nil || !ok {
		return "", false
	}
	var latest string
	if err := json.Unmarshal(raw, &latest); err != nil || latest == "" {
		return "", false
	}
	return latest, true
}

func (v *VersionChecker) saveLatest(latest string) {
	if v.store == nil {
		return
	}
	_ = v.store.Set(updateCacheKey, latest)
}

func (v *VersionChecker) isUpdateAvailable(latest string) bool {
	current := v.currentVersion
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return current != latest
	}
	return semver.Compare(latest, current) > 0
}

func (v *VersionChecker) printUpdateNotification(latest string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	msgAvailable := v.trans.GetMessage("update_available", 0, map[string]interface{}{
		"Current": v.currentVersion,
		"Latest":  green(latest),
	})
	msgCommand := v.trans.GetMessage("update_command", 0, map[string]interface{}{
		"Command": green("zyxelmate update"),
	})

	fmt.Printf("\n%s\n", yellow("────────────────────────────────────────────"))
	fmt.Printf("%s\n", msgAvailable)
	fmt.Printf("%s\n", msgCommand)
	fmt.Printf("%s\n\n", yellow("────────────────────────────────────────────"))
}
