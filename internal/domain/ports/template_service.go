package ports

import (
	"context"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// TemplateService manages the .github/ISSUE_TEMPLATE documents.
type TemplateService interface {
	// TemplatesDir returns the directory where templates are stored
	TemplatesDir() (string, error)

	// ListTemplates lists the metadata of every parseable template
	ListTemplates(ctx context.Context) ([]models.TemplateMetadata, error)

	// LoadTemplate loads a template from an explicit file path
	LoadTemplate(ctx context.Context, filePath string) (*models.IssueTemplate, error)

	// GetTemplateByName resolves a template by file name or display name
	GetTemplateByName(ctx context.Context, name string) (*models.IssueTemplate, error)

	// SelectTemplates expands glob patterns into template file paths
	SelectTemplates(ctx context.Context, patterns []string) ([]string, error)

	// InitializeTemplates scaffolds the default templates, returning what was
	// created and what was left alone
	InitializeTemplates(ctx context.Context, force bool) (created []string, skipped []string, err error)
}
