package models

import "time"

// InvitationStatus constants
const (
	InvitationStatusPending  = "Pending"
	InvitationStatusAccepted = "Accepted"
	InvitationStatusDeclined = "Declined"
)

// Invitation invites a user to join a workspace.
type Invitation struct {
	ID            string    `json:"id"`
	WorkspaceID   string    `json:"workspaceId"`
	WorkspaceName string    `json:"workspaceName,omitempty"`
	InviterID     string    `json:"inviterId,omitempty"`
	InviteeEmail  string    `json:"inviteeEmail"`
	Role          string    `json:"role,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SendInvitationRequest is the body used to invite someone to a workspace.
type SendInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
