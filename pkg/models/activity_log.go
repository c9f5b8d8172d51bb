package models

import (
	"encoding/json"
	"time"
)

// ActivityLog is one entry in a workspace's activity feed.
type ActivityLog struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	ActorID     string          `json:"actorId"`
	Action      string          `json:"action"`
	TargetType  string          `json:"targetType,omitempty"`
	TargetID    string          `json:"targetId,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
