package services

import "github.com/hashicorp-forge/hermes-client/pkg/request"

// Services groups every resource service around one request client.
type Services struct {
	ActivityLogs  *ActivityLogService
	Auth          *AuthService
	Files         *FileService
	Invitations   *InvitationService
	Notifications *NotificationService
	Presence      *PresenceService
	Users         *UserService
	Workspaces    *WorkspaceService
}

// New creates all services on top of c.
func New(c *request.Client) *Services {
	return &Services{
		ActivityLogs:  &ActivityLogService{c: c},
		Auth:          &AuthService{c: c},
		Files:         &FileService{c: c},
		Invitations:   &InvitationService{c: c},
		Notifications: &NotificationService{c: c},
		Presence:      &PresenceService{c: c},
		Users:         &UserService{c: c},
		Workspaces:    &WorkspaceService{c: c},
	}
}
