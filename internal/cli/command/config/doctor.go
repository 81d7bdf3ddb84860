package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/hass"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

const dialBudget = 3 * time.Second

type DoctorCommand struct{}

func NewDoctorCommand() *DoctorCommand {
	return &DoctorCommand{}
}

func (d *DoctorCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   t.GetMessage("doctor_command_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(ctx, t, cfg)
		},
	}
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

type healthCheck struct {
	name string
	fn   func(context.Context, *i18n.Translations, *config.Config) checkResult
}

func (d *DoctorCommand) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *config.Config) error {
	ui.PrintSectionBanner(t.GetMessage("doctor_running", 0, nil))

	checks := []healthCheck{
		{name: "doctor_check_config", fn: d.checkConfigFile},
		{name: "doctor_check_device", fn: d.checkDeviceReachable},
		{name: "doctor_check_ssh_password", fn: d.checkSSHPassword},
		{name: "doctor_check_manifest", fn: d.checkManifest},
		{name: "doctor_check_github", fn: d.checkGitHub},
		{name: "doctor_check_gemini", fn: d.checkGeminiKey},
		{name: "doctor_check_templates", fn: d.checkTemplates},
	}

	var problems int
	var warnings int

	for _, check := range checks {
		checkName := t.GetMessage(check.name, 0, nil)
		spinner := ui.NewSmartSpinner(checkName)
		spinner.Start()

		result := check.fn(ctx, t, cfg)

		switch result.status {
		case checkStatusOK:
			spinner.Success(checkName)
			if result.message != "" {
				ui.PrintInfo("  " + result.message)
			}
		case checkStatusWarning:
			spinner.Warning(checkName)
			warnings++
			if result.message != "" {
				ui.PrintInfo("  " + result.message)
			}
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		case checkStatusError:
			spinner.Error(checkName)
			problems++
			if result.message != "" {
				ui.PrintInfo("  " + result.message)
			}
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		}
	}

	fmt.Println()
	ui.PrintSectionBanner(t.GetMessage("doctor_summary", 0, nil))

	if problems > 0 {
		return fmt.Errorf("%s", t.GetMessage("doctor_problems", problems, map[string]interface{}{"Count": problems}))
	}
	if warnings > 0 {
		ui.PrintWarning(t.GetMessage("doctor_has_warnings", 0, nil))
		return nil
	}
	ui.PrintSuccess(os.Stdout, t.GetMessage("doctor_all_good", 0, nil))
	return nil
}

func (d *DoctorCommand) checkConfigFile(_ context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.PathFile == "" || !fileExists(cfg.PathFile) {
		return checkResult{
			status:     checkStatusError,
			suggestion: "Run 'zyxelmate config init'",
		}
	}
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", cfg.PathFile),
	}
}

func (d *DoctorCommand) checkDeviceReachable(_ context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	addr := net.JoinHostPort(cfg.Device.Host, fmt.Sprintf("%d", cfg.Device.Port))
	conn, err := net.DialTimeout("tcp", addr, dialBudget)
	if err != nil {
		return checkResult{
			status:     checkStatusWarning,
			message:    fmt.Sprintf("cannot reach %s", addr),
			suggestion: "Check the address with 'zyxelmate config set-device --host <ip>'",
		}
	}
	_ = conn.Close()
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", addr),
	}
}

func (d *DoctorCommand) checkSSHPassword(_ context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.DevicePassword() == "" {
		return checkResult{
			status:     checkStatusWarning,
			suggestion: "Set " + config.EnvSSHPassword + " or run 'zyxelmate config set-device -p <password>'",
		}
	}
	return checkResult{status: checkStatusOK}
}

func (d *DoctorCommand) checkManifest(ctx context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	manifest, err := hass.NewLocator(cfg.HassConfigDir).Manifest(ctx)
	if err != nil {
		return checkResult{
			status:     checkStatusWarning,
			message:    "ha_zyxel manifest not found",
			suggestion: "Reports will carry an unknown integration version; set hass_config_dir if the integration is installed",
		}
	}
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(ha_zyxel %s)", manifest.Version),
	}
}

func (d *DoctorCommand) checkGitHub(_ context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return checkResult{
			status:     checkStatusWarning,
			suggestion: "Run 'zyxelmate config set-github --owner <owner> --repo <repo>'",
		}
	}
	if cfg.GitHubToken() == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    fmt.Sprintf("(%s/%s, no token)", cfg.GitHub.Owner, cfg.GitHub.Repo),
			suggestion: "Set " + config.EnvGitHubToken + " to submit issues directly",
		}
	}
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s/%s)", cfg.GitHub.Owner, cfg.GitHub.Repo),
	}
}

func (d *DoctorCommand) checkGeminiKey(_ context.Context, _ *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.GeminiAPIKey() == "" {
		return checkResult{
			status:     checkStatusWarning,
			suggestion: "Set " + config.EnvGeminiKey + " to enable AI drafting",
		}
	}
	return checkResult{status: checkStatusOK}
}

func (d *DoctorCommand) checkTemplates(ctx context.Context, _ *i18n.Translations, _ *config.Config) checkResult {
	svc := services.NewTemplateService()
	templates, err := svc.ListTemplates(ctx)
	if err != nil || len(templates) == 0 {
		return checkResult{
			status:     checkStatusWarning,
			suggestion: "Run 'zyxelmate template init' inside the integration repository",
		}
	}
	dir, _ := svc.TemplatesDir()
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%d in %s)", len(templates), dir),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
