// Package verification holds the credentials captured during a multi-step
// signup or password-reset flow. The context lives in memory only; nothing in
// this package touches durable storage. Callers clear it as soon as the flow
// completes or is abandoned.
package verification

import (
	"fmt"

	"github.com/hashicorp-forge/hermes-client/pkg/store"
)

// Context is the in-progress credential pair. Nil fields are unset.
type Context struct {
	Email    *string `json:"email"`
	Password *string `json:"-"`
}

// String renders the context with the password redacted.
func (c Context) String() string {
	email := "<nil>"
	if c.Email != nil {
		email = *c.Email
	}
	password := "<nil>"
	if c.Password != nil {
		password = "<redacted>"
	}
	return fmt.Sprintf("{email: %s, password: %s}", email, password)
}

// GoString keeps %#v from printing the password.
func (c Context) GoString() string {
	return "verification.Context" + c.String()
}

// Store owns the current verification Context.
type Store struct {
	state *store.Store[Context]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: store.New(Context{})}
}

// State returns the current context.
func (s *Store) State() Context {
	return s.state.Get()
}

// Set records email and clears any password.
func (s *Store) Set(email string) {
	s.state.Set(Context{Email: &email})
}

// SetWithPassword records email and password.
func (s *Store) SetWithPassword(email, password string) {
	s.state.Set(Context{Email: &email, Password: &password})
}

// Clear resets both fields to nil.
func (s *Store) Clear() {
	s.state.Set(Context{})
}

// Subscribe calls fn with every new context.
func (s *Store) Subscribe(fn func(Context)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}
