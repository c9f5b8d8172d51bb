package services

import (
	"context"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// UserService reads and updates the current user's profile.
type UserService struct {
	c *request.Client
}

// Me fetches the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context) (*models.User, error) {
	return request.Get[*models.User](ctx, s.c, "/users/me")
}

// UpdateProfile applies update and returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	return request.Put[*models.User](ctx, s.c, "/users", update)
}
