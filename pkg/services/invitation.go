package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// InvitationService sends and answers workspace invitations.
type InvitationService struct {
	c *request.Client
}

// GetMine lists invitations addressed to the current user.
func (s *InvitationService) GetMine(ctx context.Context) (*models.Page[models.Invitation], error) {
	return request.Get[*models.Page[models.Invitation]](ctx, s.c, "/invitations/my")
}

// Send invites someone to a workspace.
func (s *InvitationService) Send(ctx context.Context, workspaceID string, req models.SendInvitationRequest) error {
	path := fmt.Sprintf("/workspaces/%s/invitations", url.PathEscape(workspaceID))
	_, err := request.Post[request.NoContent](ctx, s.c, path, req)
	return err
}

// Respond accepts or declines an invitation.
func (s *InvitationService) Respond(ctx context.Context, id string, accept bool) error {
	path := fmt.Sprintf("/invitations/%s/respond?accept=%s", url.PathEscape(id), strconv.FormatBool(accept))
	_, err := request.Post[request.NoContent](ctx, s.c, path, nil)
	return err
}
