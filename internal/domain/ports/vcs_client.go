package ports

import (
	"context"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// VCSClient covers the GitHub surface zyxelmate needs.
type VCSClient interface {
	// CreateIssue submits a drafted bug report and returns the created issue.
	CreateIssue(ctx context.Context, draft *models.IssueDraft) (*models.Issue, error)

	// GetTemplateContent fetches a template file from the repository's
	// .github/ISSUE_TEMPLATE directory.
	GetTemplateContent(ctx context.Context, name string) (string, error)

	// AuthenticatedUser returns the login of the token's user.
	AuthenticatedUser(ctx context.Context) (string, error)
}
