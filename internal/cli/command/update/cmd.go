package update

import (
	"context"
	"os"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

type UpdateCommandFactory struct {
	currentVersion string

	// newChecker builds the release checker, swapped out in tests
	newChecker func(trans *i18n.Translations) *services.VersionChecker
}

func NewUpdateCommandFactory(currentVersion string) *UpdateCommandFactory {
	return &UpdateCommandFactory{
		currentVersion: currentVersion,
		newChecker: func(trans *i18n.Translations) *services.VersionChecker {
			return services.NewVersionChecker(currentVersion, trans)
		},
	}
}

func (f *UpdateCommandFactory) CreateCommand(trans *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: trans.GetMessage("update_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Only check whether a new version exists",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			checker := f.newChecker(trans)

			var latest string
			err := ui.WithSpinner(trans.GetMessage("update_checking", 0, nil), func() error {
				var fetchErr error
				latest, fetchErr = checker.LatestVersion(ctx)
				return fetchErr
			})
			if err != nil {
				return domainErrors.ErrUpdateFailed.WithError(err)
			}

			if !checker.UpdateAvailable(latest) {
				ui.PrintSuccess(os.Stdout, trans.GetMessage("update_up_to_date", 0, map[string]interface{}{
					"Version": f.currentVersion,
				}))
				return nil
			}

			ui.PrintInfo(trans.GetMessage("update_available", 0, map[string]interface{}{
				"Latest":  latest,
				"Current": f.currentVersion,
			}))

			if command.Bool("check") {
				return nil
			}

			if err := checker.UpdateCLI(ctx); err != nil {
				return domainErrors.ErrUpdateFailed.WithError(err)
			}

			ui.PrintSuccess(os.Stdout, trans.GetMessage("update_success", 0, map[string]interface{}{
				"Version": latest,
			}))
			return nil
		},
	}
}
