package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// WorkspaceService reads workspace records.
type WorkspaceService struct {
	c *request.Client
}

// Get fetches a workspace by id.
func (s *WorkspaceService) Get(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	path := fmt.Sprintf("/workspaces/%s", url.PathEscape(workspaceID))
	return request.Get[*models.Workspace](ctx, s.c, path)
}
