// Package auth holds the client's authenticated session.
//
// The session is persisted on every mutation and rehydrated when the store is
// created, so a signed-in user stays signed in across restarts until Logout.
package auth

import (
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/storage"
	"github.com/hashicorp-forge/hermes-client/pkg/store"
)

// Store owns the current Session.
type Store struct {
	state   *store.Store[Session]
	storage storage.Storage
	logger  hclog.Logger
}

// NewStore creates a store rehydrated from st.
func NewStore(st storage.Storage, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("auth")

	return &Store{
		state:   store.New(Rehydrate(st, logger)),
		storage: st,
		logger:  logger,
	}
}

// State returns the current session.
func (s *Store) State() Session {
	return s.state.Get()
}

// SetUser signs user in. The user record is stored as given.
func (s *Store) SetUser(user *models.User) {
	s.set(Session{User: user, IsAuthenticated: true})
}

// Logout clears the session.
func (s *Store) Logout() {
	s.set(Session{})
}

// Subscribe calls fn with every new session.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}

func (s *Store) set(session Session) {
	s.state.Update(func(Session) Session {
		// Persist inside the update so writes reach storage in mutation order.
		if err := Persist(s.storage, session); err != nil {
			s.logger.Warn("failed to persist session", "error", err)
		}
		return session
	})
}
