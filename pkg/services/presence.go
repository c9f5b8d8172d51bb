package services

import (
	"context"

	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// PresenceService reports and queries online status.
type PresenceService struct {
	c *request.Client
}

// Heartbeat tells the backend the current user is online.
func (s *PresenceService) Heartbeat(ctx context.Context) error {
	_, err := request.Post[request.NoContent](ctx, s.c, "/presence/heartbeat", nil)
	return err
}

// Check returns the subset of userIDs currently online.
func (s *PresenceService) Check(ctx context.Context, userIDs []string) ([]string, error) {
	return request.Post[[]string](ctx, s.c, "/presence/check", userIDs)
}
