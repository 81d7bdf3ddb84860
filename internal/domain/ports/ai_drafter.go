package ports

import (
	"context"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
)

// BugDrafter turns the reporter's one-line hint plus the collected
// diagnostics into a usable 'Describe the bug' section.
type BugDrafter interface {
	DraftDescription(ctx context.Context, hint string, snapshot *models.DeviceSnapshot) (*models.DraftResult, error)
}
