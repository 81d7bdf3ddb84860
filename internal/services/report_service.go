package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/template"
)

// defaultTemplateName is the template used when the reporter does not pick
// one.
const defaultTemplateName = "bug_report"

// cachedSnapshotMaxAge is how stale a stored snapshot may be before a report
// refuses to use it as a fallback.
const cachedSnapshotMaxAge = 24 * time.Hour

// ReportOptions carries the report command's flags into the pipeline.
type ReportOptions struct {
	TemplateName   string
	RemoteTemplate string
	Describe       string
	Expected       string
	Steps          string
	UseAI          bool
	NoDevice       bool
	Diagnostics    bool
	AssignMe       bool
}

// ReportDraft is a built report plus everything the command needs to show
// the reporter before submitting.
type ReportDraft struct {
	Template *models.IssueTemplate
	Draft    *models.IssueDraft
	Snapshot *models.DeviceSnapshot
	Usage    *models.TokenUsage
	Warnings []string
}

// ReportService assembles a pre-filled bug report from the template, the
// device diagnostics and the reporter's input, and hands it to GitHub.
type ReportService struct {
	cfg       *config.Config
	templates ports.TemplateService
	devices   *DeviceService
	locator   ports.IntegrationLocator
	vcs       ports.VCSClient
	drafter   ports.BugDrafter
}

func NewReportService(
	cfg *config.Config,
	templates ports.TemplateService,
	devices *DeviceService,
	locator ports.IntegrationLocator,
	vcs ports.VCSClient,
	drafter ports.BugDrafter,
) *ReportService {
	return &ReportService{
		cfg:       cfg,
		templates: templates,
		devices:   devices,
		locator:   locator,
		vcs:       vcs,
		drafter:   drafter,
	}
}

// BuildDraft runs the whole assembly pipeline short of submitting. Device and
// manifest lookups degrade to warnings so a report can still be filed when
// the access point is down.
func (s *ReportService) BuildDraft(ctx context.Context, opts ReportOptions) (*ReportDraft, error) {
	tmpl, err := s.resolveTemplate(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &ReportDraft{Template: tmpl}

	snap := s.collectDiagnostics(ctx, opts, result)
	result.Snapshot = snap

	describe := opts.Describe
	if opts.UseAI {
		draft, err := s.draftDescription(ctx, opts.Describe, snap)
		if err != nil {
			return nil, err
		}
		describe = draft.Text
		result.Usage = draft.Usage
	}

	values := map[string]string{}
	if snap != nil && snap.Info.Model != "" {
		values["Zyxel device model"] = deviceModelLine(snap.Info)
	}
	if version := s.integrationVersion(ctx, result); version != "" {
		values["Integration version"] = version
	}
	if describe != "" {
		values["Describe the bug"] = describe
	}
	if opts.Expected != "" {
		values["Expected behavior"] = opts.Expected
	}
	steps := opts.Steps
	if opts.Diagnostics && snap != nil {
		block := diagnosticsBlock(snap)
		if steps != "" {
			steps += "\n\n" + block
		} else {
			steps = block
		}
	}
	if steps != "" {
		values["To Reproduce"] = steps
	}

	result.Draft = template.Prefill(tmpl, values)

	if opts.AssignMe {
		if err := s.assignAuthenticatedUser(ctx, result.Draft); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ApplyValues re-renders the draft body after interactive completion.
func (s *ReportService) ApplyValues(draft *ReportDraft, values map[string]string) {
	assignees := draft.Draft.Assignees
	draft.Draft = template.Prefill(draft.Template, values)
	draft.Draft.Assignees = assignees
}

// Submit creates the issue on the configured repository.
func (s *ReportService) Submit(ctx context.Context, draft *models.IssueDraft) (*models.Issue, error) {
	if s.vcs == nil {
		return nil, domainErrors.ErrTokenMissing
	}
	return s.vcs.CreateIssue(ctx, draft)
}

// IssueURL renders the pre-filled "new issue" hand-off URL for the draft.
func (s *ReportService) IssueURL(draft *models.IssueDraft) (string, error) {
	if s.cfg.GitHub.Owner == "" || s.cfg.GitHub.Repo == "" {
		return "", domainErrors.ErrRepoNotConfigured
	}
	return template.NewIssueURL(s.cfg.GitHub.Owner, s.cfg.GitHub.Repo, draft), nil
}

func (s *ReportService) resolveTemplate(ctx context.Context, opts ReportOptions) (*models.IssueTemplate, error) {
	if opts.RemoteTemplate != "" {
		if s.vcs == nil {
			return nil, domainErrors.ErrTokenMissing
		}
		content, err := s.vcs.GetTemplateContent(ctx, opts.RemoteTemplate)
		if err != nil {
			return nil, err
		}
		tmpl := template.Parse(content, opts.RemoteTemplate)
		if len(tmpl.Sections) == 0 {
			return nil, domainErrors.ErrTemplateInvalid.WithContext("template", opts.RemoteTemplate)
		}
		return tmpl, nil
	}

	name := opts.TemplateName
	if name == "" {
		name = s.cfg.GitHub.DefaultTemplate
	}
	if name == "" {
		name = defaultTemplateName
	}
	tmpl, err := s.templates.GetTemplateByName(ctx, name)
	if err != nil {
		return nil, err
	}
	// A template without headings would prefill to an empty issue body.
	if len(tmpl.Sections) == 0 {
		return nil, domainErrors.ErrTemplateInvalid.WithContext("template", name)
	}
	return tmpl, nil
}

func (s *ReportService) collectDiagnostics(ctx context.Context, opts ReportOptions, result *ReportDraft) *models.DeviceSnapshot {
	if opts.NoDevice || s.devices == nil {
		return nil
	}

	snap, err := s.devices.Snapshot(ctx)
	if err == nil {
		return snap
	}

	cached, cacheErr := s.devices.CachedSnapshot(cachedSnapshotMaxAge)
	if cacheErr == nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("device unreachable, using cached diagnostics from %s", cached.FetchedAt.Format(time.RFC3339)))
		return cached
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("device diagnostics unavailable: %v", err))
	return nil
}

func (s *ReportService) draftDescription(ctx context.Context, hint string, snap *models.DeviceSnapshot) (*models.DraftResult, error) {
	if s.drafter == nil {
		return nil, domainErrors.ErrAPIKeyMissing
	}
	return s.drafter.DraftDescription(ctx, hint, snap)
}

func (s *ReportService) integrationVersion(ctx context.Context, result *ReportDraft) string {
	if s.locator == nil {
		return ""
	}
	manifest, err := s.locator.Manifest(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("integration version unavailable: %v", err))
		return ""
	}
	return manifest.Version
}

func (s *ReportService) assignAuthenticatedUser(ctx context.Context, draft *models.IssueDraft) error {
	if s.vcs == nil {
		return domainErrors.ErrTokenMissing
	}
	login, err := s.vcs.AuthenticatedUser(ctx)
	if err != nil {
		return err
	}
	for _, a := range draft.Assignees {
		if a == login {
			return nil
		}
	}
	draft.Assignees = append(draft.Assignees, login)
	return nil
}

func deviceModelLine(info models.DeviceInfo) string {
	line := info.Model
	if info.Firmware != "" {
		line += ", firmware " + info.Firmware
	}
	if info.BuildDate != "" {
		line += " (" + info.BuildDate + ")"
	}
	return line
}

// diagnosticsBlock renders the snapshot as the fenced context block appended
// under 'To Reproduce'.
func diagnosticsBlock(snap *models.DeviceSnapshot) string {
	var b strings.Builder
	b.WriteString("Diagnostics at the time of the report:\n```\n")
	fmt.Fprintf(&b, "uptime:  %s\n", snap.Uptime())
	fmt.Fprintf(&b, "cpu:     %d%% (1min avg %d%%)\n", snap.CPU.Current, snap.CPU.Avg1Min)
	fmt.Fprintf(&b, "memory:  %d%%\n", snap.MemoryUsage)
	fmt.Fprintf(&b, "clients: %d (2.4G: %d, 5G: %d)\n", snap.ClientCount(), snap.Clients24G(), snap.Clients5G())
	if snap.Port.Status != "" {
		fmt.Fprintf(&b, "uplink:  %s %s\n", snap.Port.Status, snap.Port.Speed)
	}
	b.WriteString("```")
	return b.String()
}
