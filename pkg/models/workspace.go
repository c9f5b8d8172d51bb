package models

import "time"

// WorkspaceStatus is the lifecycle status of a workspace.
type WorkspaceStatus string

// WorkspaceStatus constants
const (
	WorkspaceStatusActive   WorkspaceStatus = "Active"
	WorkspaceStatusArchived WorkspaceStatus = "Archived"
)

// Workspace is a collaboration container shared by its members.
type Workspace struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      WorkspaceStatus `json:"status"`
	OwnerID     string          `json:"ownerId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// IsArchived reports whether the workspace has been archived.
func (w *Workspace) IsArchived() bool {
	return w != nil && w.Status == WorkspaceStatusArchived
}
