package models

import "time"

// PresignedURL wraps a short-lived URL for direct object access.
type PresignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
