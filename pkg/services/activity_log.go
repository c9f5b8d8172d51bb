package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// ActivityLogService reads workspace activity feeds.
type ActivityLogService struct {
	c *request.Client
}

// GetAll lists the activity log of a workspace.
func (s *ActivityLogService) GetAll(ctx context.Context, workspaceID string) ([]models.ActivityLog, error) {
	path := fmt.Sprintf("/workspaces/%s/activity-logs", url.PathEscape(workspaceID))
	return request.Get[[]models.ActivityLog](ctx, s.c, path)
}
