package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ha-zyxel/ZyxelMate/internal/cli/completion_helper"
	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	tpl "github.com/ha-zyxel/ZyxelMate/internal/template"
	"github.com/ha-zyxel/ZyxelMate/internal/ui"
	"github.com/urfave/cli/v3"
)

// TemplateCommandFactory builds the 'template' command tree.
type TemplateCommandFactory struct {
	templates ports.TemplateService
}

func NewTemplateCommandFactory(templates ports.TemplateService) *TemplateCommandFactory {
	return &TemplateCommandFactory{templates: templates}
}

func (f *TemplateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   t.GetMessage("template_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t),
			f.newShowCommand(t),
			f.newLintCommand(t),
			f.newInitCommand(t),
			f.newRenderCommand(t),
		},
	}
}

func (f *TemplateCommandFactory) newListCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("template_list_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			templates, err := f.templates.ListTemplates(ctx)
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				ui.PrintInfo(t.GetMessage("template_list_empty", 0, nil))
				return nil
			}

			ui.PrintSectionBanner(t.GetMessage("template_list_header", 0, nil))
			for _, meta := range templates {
				name := color.New(color.FgWhite, color.Bold).Sprint(meta.Name)
				fmt.Printf("  %s %s\n", name, ui.Dim.Sprintf("(%s)", meta.FilePath))
				if meta.About != "" {
					fmt.Printf("    %s\n", meta.About)
				}
			}
			return nil
		},
	}
}

func (f *TemplateCommandFactory) newShowCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     t.GetMessage("template_show_usage", 0, nil),
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("%s", t.GetMessage("template_name_required", 0, map[string]interface{}{
					"Command": "show",
				}))
			}

			template, err := f.templates.GetTemplateByName(ctx, name)
			if err != nil {
				return err
			}

			ui.PrintSectionBanner(template.Name)
			if about := template.GetAbout(); about != "" {
				ui.PrintKeyValue("about", about)
			}
			if len(template.Labels) > 0 {
				ui.PrintKeyValue("labels", strings.Join(template.Labels, ", "))
			}
			if len(template.Assignees) > 0 {
				ui.PrintKeyValue("assignees", strings.Join(template.Assignees, ", "))
			}

			fmt.Printf("\n%s\n", ui.Info.Sprint(t.GetMessage("template_sections_header", 0, nil)))
			for i, heading := range template.Headings() {
				fmt.Printf("  %d. %s\n", i+1, heading)
			}
			return nil
		},
	}
}

func (f *TemplateCommandFactory) newLintCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     t.GetMessage("template_lint_usage", 0, nil),
		ArgsUsage: "[patterns...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   t.GetMessage("template_lint_watch_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			patterns := cmd.Args().Slice()

			files, err := f.templates.SelectTemplates(ctx, patterns)
			if err != nil {
				return err
			}

			if !cmd.Bool("watch") {
				if f.lintOnce(ctx, t, files) {
					return fmt.Errorf("%s", t.GetMessage("template_lint_failed", 0, nil))
				}
				return nil
			}

			f.lintOnce(ctx, t, files)
			ui.PrintInfo(t.GetMessage("template_lint_watching", 0, nil))

			watcher, err := tpl.NewWatcher(files, func(ctx context.Context) {
				f.lintOnce(ctx, t, files)
			})
			if err != nil {
				return err
			}
			return watcher.Run(ctx)
		},
	}
}

// lintOnce lints every file and prints the findings. Reports whether any
// error-severity finding was seen.
func (f *TemplateCommandFactory) lintOnce(ctx context.Context, t *i18n.Translations, files []string) bool {
	problems := 0
	failed := false

	for _, file := range files {
		template, err := f.templates.LoadTemplate(ctx, file)
		if err != nil {
			ui.PrintError(os.Stdout, err.Error())
			failed = true
			continue
		}

		findings := tpl.Lint(template)
		if len(findings) == 0 {
			continue
		}

		fmt.Printf("\n%s\n", color.New(color.FgWhite, color.Bold).Sprint(filepath.Base(file)))
		for _, finding := range findings {
			problems++
			switch finding.Severity {
			case tpl.SeverityError:
				fmt.Printf("  %s %s\n", ui.Error.Sprint("error"), finding.Message)
			default:
				fmt.Printf("  %s %s\n", ui.Warning.Sprint("warning"), finding.Message)
			}
		}
		if tpl.HasErrors(findings) {
			failed = true
		}
	}

	fmt.Println()
	if problems == 0 {
		ui.PrintSuccess(os.Stdout, t.GetMessage("template_lint_clean", len(files), map[string]interface{}{
			"Count": len(files),
		}))
	} else {
		ui.PrintWarning(t.GetMessage("template_lint_problems", problems, map[string]interface{}{
			"Count": problems,
		}))
	}
	return failed
}

func (f *TemplateCommandFactory) newInitCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("template_init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			created, skipped, err := f.templates.InitializeTemplates(ctx, cmd.Bool("force"))
			if err != nil {
				return err
			}

			for _, file := range created {
				ui.PrintSuccess(cmd.Writer, t.GetMessage("template_init_created", 0, map[string]interface{}{
					"File": file,
				}))
			}
			for _, file := range skipped {
				ui.PrintInfo(t.GetMessage("template_init_skipped", 0, map[string]interface{}{
					"File": file,
				}))
			}

			if len(created) == 0 && len(skipped) > 0 {
				return domainErrors.ErrTemplateExists
			}

			fmt.Println(t.GetMessage("template_init_summary", 0, map[string]interface{}{
				"Created": len(created),
				"Skipped": len(skipped),
			}))
			return nil
		},
	}
}

func (f *TemplateCommandFactory) newRenderCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     t.GetMessage("template_render_usage", 0, nil),
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "Pre-fill a section, e.g. --set 'Describe the bug=wifi drops'",
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("%s", t.GetMessage("template_name_required", 0, map[string]interface{}{
					"Command": "render",
				}))
			}

			template, err := f.templates.GetTemplateByName(ctx, name)
			if err != nil {
				return err
			}

			values := make(map[string]string)
			for _, pair := range cmd.StringSlice("set") {
				heading, value, found := strings.Cut(pair, "=")
				if !found {
					continue
				}
				heading = strings.TrimSpace(heading)
				if _, ok := template.FindSection(heading); !ok {
					return domainErrors.ErrSectionNotFound.WithContext("heading", heading)
				}
				values[heading] = value
			}

			draft := tpl.Prefill(template, values)
			fmt.Print(draft.Body)
			return nil
		},
	}
}
