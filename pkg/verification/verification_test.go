package verification

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StartsEmpty(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.State().Email)
	assert.Nil(t, s.State().Password)
}

func TestStore_SetWithoutPassword(t *testing.T) {
	s := NewStore()
	s.SetWithPassword("old@example.com", "old-secret")

	s.Set("a@b.com")

	state := s.State()
	require.NotNil(t, state.Email)
	assert.Equal(t, "a@b.com", *state.Email)
	assert.Nil(t, state.Password)
}

func TestStore_SetWithPassword(t *testing.T) {
	s := NewStore()
	s.SetWithPassword("a@b.com", "hunter2")

	state := s.State()
	require.NotNil(t, state.Email)
	require.NotNil(t, state.Password)
	assert.Equal(t, "a@b.com", *state.Email)
	assert.Equal(t, "hunter2", *state.Password)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()

	s.Clear()
	assert.Equal(t, Context{}, s.State())

	s.SetWithPassword("a@b.com", "hunter2")
	s.Clear()
	assert.Equal(t, Context{}, s.State())
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var emails []string
	unsubscribe := s.Subscribe(func(c Context) {
		if c.Email == nil {
			emails = append(emails, "")
			return
		}
		emails = append(emails, *c.Email)
	})

	s.Set("a@b.com")
	s.Clear()
	unsubscribe()
	s.Set("c@d.com")

	assert.Equal(t, []string{"a@b.com", ""}, emails)
}

func TestContext_NeverExposesPassword(t *testing.T) {
	s := NewStore()
	s.SetWithPassword("a@b.com", "hunter2")
	state := s.State()

	for _, rendered := range []string{
		state.String(),
		fmt.Sprintf("%v", state),
		fmt.Sprintf("%+v", state),
		fmt.Sprintf("%#v", state),
	} {
		assert.NotContains(t, rendered, "hunter2")
		assert.Contains(t, rendered, "a@b.com")
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com"}`, string(data))
}
