package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ha-zyxel/ZyxelMate/internal/cli/command/completion"
	configcmd "github.com/ha-zyxel/ZyxelMate/internal/cli/command/config"
	"github.com/ha-zyxel/ZyxelMate/internal/cli/command/device"
	"github.com/ha-zyxel/ZyxelMate/internal/cli/command/report"
	templatecmd "github.com/ha-zyxel/ZyxelMate/internal/cli/command/template"
	"github.com/ha-zyxel/ZyxelMate/internal/cli/command/update"
	"github.com/ha-zyxel/ZyxelMate/internal/cli/registry"
	cfg "github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/ai/gemini"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/cache"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/hass"
	"github.com/ha-zyxel/ZyxelMate/internal/infrastructure/vcs/github"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/ha-zyxel/ZyxelMate/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfg.GetLocaleConfig(cfgApp.Language), "")
	if err != nil {
		return nil, nil, fmt.Errorf("could not load translations: %w", err)
	}

	if err := cfg.SaveConfig(cfgApp); err != nil {
		return nil, nil, err
	}

	ui.SetEmojiEnabled(cfgApp.UseEmoji)

	var store ports.SnapshotStore
	if s, err := cache.NewSnapshotStore(); err == nil {
		store = s
	} else {
		log.Printf("Warning: snapshot cache unavailable: %v", err)
	}

	deviceService := services.NewDeviceService(cfgApp, services.DefaultClientFactory, store)
	templateService := services.NewTemplateService()

	reportProvider := func(ctx context.Context, opts services.ReportOptions) (*services.ReportService, error) {
		var vcsClient ports.VCSClient
		if token := cfgApp.GitHubToken(); token != "" {
			vcsClient = github.NewClient(cfgApp.GitHub.Owner, cfgApp.GitHub.Repo, token)
		}

		var drafter ports.BugDrafter
		if opts.UseAI {
			if key := cfgApp.GeminiAPIKey(); key != "" {
				d, err := gemini.NewDrafter(ctx, key, cfgApp.AI.Model)
				if err != nil {
					return nil, err
				}
				drafter = d
			}
		}

		locator := hass.NewLocator(cfgApp.HassConfigDir)
		return services.NewReportService(cfgApp, templateService, deviceService, locator, vcsClient, drafter), nil
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	factories := map[string]registry.CommandFactory{
		"report":   report.NewReportCommandFactory(reportProvider),
		"status":   device.NewStatusCommandFactory(deviceService),
		"clients":  device.NewClientsCommandFactory(deviceService),
		"reboot":   device.NewRebootCommandFactory(deviceService),
		"guest":    device.NewGuestCommandFactory(deviceService),
		"template": templatecmd.NewTemplateCommandFactory(templateService),
		"config":   configcmd.NewConfigCommandFactory(),
		"doctor":   configcmd.NewDoctorCommand(),
		"update":   update.NewUpdateCommandFactory(version.FullVersion()),
	}
	for _, name := range []string{"report", "status", "clients", "reboot", "guest", "template", "config", "doctor", "update"} {
		if err := registerCommand.Register(name, factories[name]); err != nil {
			return nil, nil, fmt.Errorf("could not register the '%s' command: %w", name, err)
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations))

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	go func() {
		checker := services.NewVersionChecker(version.FullVersion(), translations)
		checker.CheckForUpdates(context.Background())
	}()

	return &cli.Command{
		Name:        "zyxelmate",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log what every step is doing",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log at debug level with source positions",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
