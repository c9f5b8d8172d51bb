// Package permissions derives what the current user may do in a workspace.
//
// The derivation depends on exactly one input: whether the workspace status
// is Archived. Deleting the workspace and removing members are granted
// unconditionally, and a workspace that has not loaded (or failed to load)
// counts as not archived. No role or per-user data participates until the
// backend exposes it.
package permissions

import (
	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/query"
)

// Capabilities is the capability set of the current user in one workspace.
type Capabilities struct {
	IsLoading             bool `json:"isLoading"`
	IsArchived            bool `json:"isArchived"`
	CanEdit               bool `json:"canEdit"`
	CanDeleteWorkspace    bool `json:"canDeleteWorkspace"`
	CanUnarchiveWorkspace bool `json:"canUnarchiveWorkspace"`
	CanRemoveMember       bool `json:"canRemoveMember"`
	CanInviteMember       bool `json:"canInviteMember"`
}

// Derive computes capabilities from workspace state. ws may be nil.
func Derive(ws *models.Workspace, isLoading bool) Capabilities {
	isArchived := ws.IsArchived()

	return Capabilities{
		IsLoading:             isLoading,
		IsArchived:            isArchived,
		CanEdit:               !isArchived,
		CanDeleteWorkspace:    true,
		CanUnarchiveWorkspace: isArchived,
		CanRemoveMember:       true,
		CanInviteMember:       !isArchived,
	}
}

// Source provides the current state of a workspace.
type Source interface {
	Snapshot(workspaceID string) query.Snapshot
}

// WatchableSource is a Source that reports changes.
type WatchableSource interface {
	Source
	Subscribe(workspaceID string, fn func(query.Snapshot)) (unsubscribe func())
}

var (
	_ Source          = (*query.WorkspaceQuery)(nil)
	_ WatchableSource = (*query.WorkspaceQuery)(nil)
)

// ForWorkspace derives capabilities from the current state in src.
func ForWorkspace(src Source, workspaceID string) Capabilities {
	snap := src.Snapshot(workspaceID)
	return Derive(snap.Workspace, snap.IsLoading)
}

// Watch calls fn with freshly derived capabilities every time the workspace
// changes in src.
func Watch(src WatchableSource, workspaceID string, fn func(Capabilities)) (unsubscribe func()) {
	return src.Subscribe(workspaceID, func(snap query.Snapshot) {
		fn(Derive(snap.Workspace, snap.IsLoading))
	})
}
