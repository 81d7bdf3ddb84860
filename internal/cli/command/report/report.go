package report

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ha-zyxel/ZyxelMate/internal/cli/completion_helper"
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/ha-zyxel/ZyxelMate/internal/services"
	"github.com/ha-zyxel/ZyxelMate/internal/tui"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ReportServiceProvider builds the report pipeline lazily so a missing token
// or API key only fails the flows that need them.
type ReportServiceProvider func(ctx context.Context, opts services.ReportOptions) (*services.ReportService, error)

// interactiveForm runs the completion form, swapped out in tests.
type interactiveForm func(t *models.IssueTemplate, initial map[string]string) (map[string]string, bool, error)

type ReportCommandFactory struct {
	provider ReportServiceProvider
	form     interactiveForm
	isTTY    func() bool
}

func NewReportCommandFactory(provider ReportServiceProvider) *ReportCommandFactory {
	return &ReportCommandFactory{
		provider: provider,
		form:     tui.Run,
		isTTY: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func (f *ReportCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "report",
		Aliases:       []string{"r"},
		Usage:         t.GetMessage("report_command_usage", 0, nil),
		Flags:         f.createFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createAction(t, cfg),
	}
}

func (f *ReportCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "Template to file the report with",
		},
		&cli.StringFlag{
			Name:  "remote-template",
			Usage: "Fetch the template from the configured repository instead of the working tree",
		},
		&cli.StringFlag{
			Name:    "describe",
			Aliases: []string{"m"},
			Usage:   "Text for the 'Describe the bug' section (or the AI hint with --ai)",
		},
		&cli.StringFlag{
			Name:  "expected",
			Usage: "Text for the 'Expected behavior' section",
		},
		&cli.StringFlag{
			Name:  "steps",
			Usage: "Text for the 'To Reproduce' section",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "Complete the remaining sections in a form",
		},
		&cli.BoolFlag{
			Name:  "ai",
			Usage: "Draft the bug description with Gemini",
		},
		&cli.BoolFlag{
			Name:  "no-device",
			Usage: "Skip the device diagnostics",
		},
		&cli.BoolFlag{
			Name:  "diagnostics",
			Usage: "Append a diagnostics block to the report",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the report without creating the issue",
		},
		&cli.BoolFlag{
			Name:  "url",
			Usage: "Print a pre-filled new-issue URL instead of creating the issue",
		},
		&cli.BoolFlag{
			Name:    "assign-me",
			Aliases: []string{"a"},
			Usage:   "Assign the issue to the authenticated user",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	}
}

func (f *ReportCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts := services.ReportOptions{
			TemplateName:   cmd.String("template"),
			RemoteTemplate: cmd.String("remote-template"),
			Describe:       cmd.String("describe"),
			Expected:       cmd.String("expected"),
			Steps:          cmd.String("steps"),
			UseAI:          cmd.Bool("ai"),
			NoDevice:       cmd.Bool("no-device"),
			Diagnostics:    cmd.Bool("diagnostics"),
			AssignMe:       cmd.Bool("assign-me"),
		}

		service, err := f.provider(ctx, opts)
		if err != nil {
			return err
		}

		if opts.NoDevice {
			ui.PrintInfo(t.GetMessage("report_device_skipped", 0, nil))
		} else {
			ui.PrintInfo(t.GetMessage("report_collecting", 0, map[string]interface{}{
				"Host": cfg.Device.Host,
			}))
		}
		if opts.UseAI {
			ui.PrintInfo(t.GetMessage("report_drafting", 0, map[string]interface{}{
				"Model": cfg.AI.Model,
			}))
		}

		draft, err := service.BuildDraft(ctx, opts)
		if err != nil {
			return err
		}

		for _, warning := range draft.Warnings {
			ui.PrintWarning(warning)
		}
		ui.PrintTokenUsage(draft.Usage, t)

		if cmd.Bool("interactive") {
			if !f.isTTY() {
				return fmt.Errorf("interactive mode needs a terminal")
			}
			ui.PrintInfo(t.GetMessage("report_interactive_hint", 0, nil))

			values, ok, err := f.form(draft.Template, sectionValues(draft))
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintInfo(t.GetMessage("operation_cancelled", 0, nil))
				return nil
			}
			service.ApplyValues(draft, values)
		}

		ui.PrintMarkdownPreview(t.GetMessage("report_preview_title", 0, nil), previewBody(draft.Draft))

		if cmd.Bool("url") {
			url, err := service.IssueURL(draft.Draft)
			if err != nil {
				return err
			}
			ui.PrintInfo(t.GetMessage("report_url_notice", 0, nil))
			fmt.Println(url)
			return nil
		}

		if cmd.Bool("dry-run") {
			ui.PrintInfo(t.GetMessage("report_dry_run_notice", 0, nil))
			return nil
		}

		if !cmd.Bool("yes") {
			prompt := t.GetMessage("report_confirm_prompt", 0, map[string]interface{}{
				"Repo": cfg.GitHub.Owner + "/" + cfg.GitHub.Repo,
			})
			if !ui.AskConfirmation(strings.TrimSuffix(prompt, " (y/N): ")) {
				ui.PrintInfo(t.GetMessage("operation_cancelled", 0, nil))
				return nil
			}
		}

		issue, err := service.Submit(ctx, draft.Draft)
		if err != nil {
			return err
		}

		ui.PrintSuccess(os.Stdout, t.GetMessage("report_created", 0, map[string]interface{}{
			"URL": issue.URL,
		}))
		return nil
	}
}

// sectionValues lifts the already-built draft body back into a heading→text
// map so the form starts from everything collected so far.
func sectionValues(draft *services.ReportDraft) map[string]string {
	values := make(map[string]string, len(draft.Template.Sections))
	filled := draft.Draft.Body
	for _, s := range draft.Template.Sections {
		marker := "**" + s.Heading + "**"
		start := strings.Index(filled, marker)
		if start < 0 {
			continue
		}
		rest := filled[start+len(marker):]
		if end := strings.Index(rest, "\n**"); end >= 0 {
			rest = rest[:end]
		}
		values[s.Heading] = strings.TrimSpace(rest)
	}
	return values
}

func previewBody(draft *models.IssueDraft) string {
	body := draft.Body
	if len(draft.Labels) > 0 {
		body += "\n" + strings.Repeat("-", 20) + "\nlabels: " + strings.Join(draft.Labels, ", ")
	}
	if len(draft.Assignees) > 0 {
		body += "\nassignees: " + strings.Join(draft.Assignees, ", ")
	}
	return body
}
