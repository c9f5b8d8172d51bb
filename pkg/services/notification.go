package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// NotificationService manages the current user's notifications.
type NotificationService struct {
	c *request.Client
}

// GetAll lists the current user's notifications.
func (s *NotificationService) GetAll(ctx context.Context) ([]models.Notification, error) {
	return request.Get[[]models.Notification](ctx, s.c, "/notifications")
}

// MarkAsRead marks one notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/notifications/%s/read", url.PathEscape(id))
	_, err := request.Put[request.NoContent](ctx, s.c, path, nil)
	return err
}

// MarkAllAsRead marks every notification as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	_, err := request.Put[request.NoContent](ctx, s.c, "/notifications/read-all", nil)
	return err
}
