package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/ha-zyxel/ZyxelMate/internal/domain/ports"
	domainErrors "github.com/ha-zyxel/ZyxelMate/internal/errors"
	"github.com/ha-zyxel/ZyxelMate/internal/logger"
	"github.com/ha-zyxel/ZyxelMate/internal/template"
)

var _ ports.TemplateService = (*TemplateService)(nil)

// TemplateService manages the .github/ISSUE_TEMPLATE documents of the
// working directory.
type TemplateService struct {
	workDir string
}

type TemplateOption func(*TemplateService)

// WithWorkDir pins the service to a directory instead of the process cwd.
func WithWorkDir(dir string) TemplateOption {
	return func(s *TemplateService) {
		s.workDir = dir
	}
}

func NewTemplateService(opts ...TemplateOption) *TemplateService {
	s := &TemplateService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TemplateService) root() (string, error) {
	if s.workDir != "" {
		return s.workDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeInternal, "failed to get current working directory", err)
	}
	return cwd, nil
}

func (s *TemplateService) TemplatesDir() (string, error) {
	root, err := s.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ".github", "ISSUE_TEMPLATE"), nil
}

// ListTemplates returns the metadata of every .md template in the templates
// dir. A missing dir is an empty list, not an error.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]models.TemplateMetadata, error) {
	templatesDir, err := s.TemplatesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug(ctx, "templates directory does not exist", "path", templatesDir)
			return []models.TemplateMetadata{}, nil
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeInternal, "failed to read templates directory", err)
	}

	templates := make([]models.TemplateMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		tpl, err := s.LoadTemplate(ctx, filepath.Join(templatesDir, entry.Name()))
		if err != nil {
			logger.Warn(ctx, "skipping unreadable template", "file", entry.Name(), "error", err)
			continue
		}

		templates = append(templates, models.TemplateMetadata{
			Name:     tpl.Name,
			About:    tpl.GetAbout(),
			FilePath: entry.Name(),
		})
	}

	logger.Debug(ctx, "listed templates", "count", len(templates))
	return templates, nil
}

// LoadTemplate reads and parses one template file.
func (s *TemplateService) LoadTemplate(ctx context.Context, filePath string) (*models.IssueTemplate, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, domainErrors.ErrTemplateNotFound.WithError(err).WithContext("path", filePath)
	}
	return template.Parse(string(content), filePath), nil
}

// GetTemplateByName resolves name as a file name (with or without .md), a
// display name from the header, or an explicit path.
func (s *TemplateService) GetTemplateByName(ctx context.Context, name string) (*models.IssueTemplate, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return s.LoadTemplate(ctx, name)
	}

	templatesDir, err := s.TemplatesDir()
	if err != nil {
		return nil, err
	}

	for _, candidate := range []string{name, name + ".md"} {
		path := filepath.Join(templatesDir, candidate)
		if _, err := os.Stat(path); err == nil {
			return s.LoadTemplate(ctx, path)
		}
	}

	// Fall back to the display name in the header.
	listed, err := s.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for _, meta := range listed {
		if strings.EqualFold(meta.Name, name) {
			return s.LoadTemplate(ctx, filepath.Join(templatesDir, meta.FilePath))
		}
	}

	logger.Warn(ctx, "template not found", "name", name, "dir", templatesDir)
	return nil, domainErrors.ErrTemplateNotFound.WithContext("name", name)
}

// SelectTemplates expands doublestar patterns, relative to the workspace
// root, into template file paths. No patterns selects every .md file in the
// templates dir.
func (s *TemplateService) SelectTemplates(ctx context.Context, patterns []string) ([]string, error) {
	root, err := s.root()
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		patterns = []string{".github/ISSUE_TEMPLATE/*.md"}
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		if filepath.IsAbs(pattern) {
			if _, err := os.Stat(pattern); err == nil {
				if _, dup := seen[pattern]; !dup {
					seen[pattern] = struct{}{}
					files = append(files, pattern)
				}
			}
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern))
		if err != nil {
			return nil, domainErrors.NewAppError(domainErrors.TypeTemplate, "invalid template pattern", err).
				WithContext("pattern", pattern)
		}
		for _, m := range matches {
			full := filepath.Join(root, filepath.FromSlash(m))
			if _, dup := seen[full]; !dup {
				seen[full] = struct{}{}
				files = append(files, full)
			}
		}
	}

	if len(files) == 0 {
		return nil, domainErrors.ErrTemplatesDirMissing.WithContext("patterns", strings.Join(patterns, ", "))
	}

	logger.Debug(ctx, "selected templates", "count", len(files))
	return files, nil
}

// InitializeTemplates scaffolds the project's default templates. Existing
// files are left alone unless force is set.
func (s *TemplateService) InitializeTemplates(ctx context.Context, force bool) (created []string, skipped []string, err error) {
	templatesDir, dirErr := s.TemplatesDir()
	if dirErr != nil {
		return nil, nil, dirErr
	}

	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return nil, nil, domainErrors.NewAppError(domainErrors.TypeInternal, "failed to create templates directory", err)
	}

	for _, tpl := range defaultTemplates {
		path := filepath.Join(templatesDir, tpl.file)

		if _, statErr := os.Stat(path); statErr == nil && !force {
			skipped = append(skipped, tpl.file)
			continue
		}

		if writeErr := os.WriteFile(path, []byte(tpl.content), 0644); writeErr != nil {
			return created, skipped, domainErrors.NewAppError(domainErrors.TypeInternal, "failed to write template", writeErr).
				WithContext("path", path)
		}
		logger.Info(ctx, "created template", "path", path)
		created = append(created, tpl.file)
	}

	return created, skipped, nil
}
