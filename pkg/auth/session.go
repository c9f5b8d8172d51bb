package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/storage"
)

// StorageKey is the storage key the session is persisted under.
const StorageKey = "auth-storage"

// StorageVersion is the schema version of the persisted envelope. Envelopes
// written with any other version are discarded on rehydration.
const StorageVersion = 1

// Session is the authenticated identity of the client. User and
// IsAuthenticated are always written together.
type Session struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// envelope is the persisted form of a Session.
type envelope struct {
	State   Session `json:"state"`
	Version int     `json:"version"`
}

// Encode serializes s into its persisted form.
func Encode(s Session) ([]byte, error) {
	data, err := json.Marshal(envelope{State: s, Version: StorageVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// Decode parses a persisted session.
func Decode(data []byte) (Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	if env.Version != StorageVersion {
		return Session{}, fmt.Errorf("unsupported session version %d", env.Version)
	}
	return env.State, nil
}

// Persist writes s to st under StorageKey.
func Persist(st storage.Storage, s Session) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := st.Set(StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Rehydrate reads the session stored under StorageKey. A missing, unreadable
// or corrupt value yields the empty session; the failure is logged, never
// returned.
func Rehydrate(st storage.Storage, logger hclog.Logger) Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	data, err := st.Get(StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}
	}
	if err != nil {
		logger.Warn("failed to read persisted session, starting signed out", "error", err)
		return Session{}
	}

	s, err := Decode(data)
	if err != nil {
		logger.Warn("discarding persisted session", "error", err)
		return Session{}
	}
	return s
}
