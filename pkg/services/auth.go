package services

import (
	"context"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// AuthService signs users up, in and out.
type AuthService struct {
	c *request.Client
}

// Login exchanges credentials for the signed-in user.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	return request.Post[*models.User](ctx, s.c, "/auth/login", req)
}

// Logout ends the server-side session.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := request.Post[request.NoContent](ctx, s.c, "/auth/logout", nil)
	return err
}

// Signup registers an account pending email verification.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) error {
	_, err := request.Post[request.NoContent](ctx, s.c, "/auth/signup", req)
	return err
}

// VerifyEmail confirms the code sent to the account's email address.
func (s *AuthService) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error {
	_, err := request.Post[request.NoContent](ctx, s.c, "/auth/verify-email", req)
	return err
}
