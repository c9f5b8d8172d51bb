package base

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func initCommand(t *testing.T, configPath string) *Command {
	t.Helper()
	t.Setenv("HERMES_ADDR", "")
	t.Setenv("HERMES_TOKEN", "")

	c := &Command{Log: hclog.NewNullLogger(), UI: cli.NewMockUi()}
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.GlobalFlags(f)
	require.NoError(t, f.Parse([]string{"-config", configPath}))
	require.NoError(t, c.Init())
	return c
}

func TestClose_SQLiteStorage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	configPath := writeConfig(t, fmt.Sprintf(`
base_url = "https://hermes.example.com"

storage {
  type = "sqlite"
  path = %q
}
`, dbPath))

	c := initCommand(t, configPath)
	c.Auth.SetUser(&models.User{ID: "u-1", Email: "ada@example.com"})

	db := c.db
	require.NotNil(t, db)
	require.NoError(t, c.Close())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "connection is closed")
	assert.NoError(t, c.Close())

	reopened := initCommand(t, configPath)
	defer reopened.Close()

	state := reopened.Auth.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "u-1", state.User.ID)
}

func TestClose_WithoutDatabase(t *testing.T) {
	configPath := writeConfig(t, `
base_url = "https://hermes.example.com"

storage {
  type = "memory"
}
`)

	c := initCommand(t, configPath)
	assert.Nil(t, c.db)
	assert.NoError(t, c.Close())
	assert.NoError(t, (&Command{}).Close())
}
