package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type LogoutCommand struct {
	*base.Command
}

func (c *LogoutCommand) Synopsis() string {
	return "Sign out of Hermes"
}

func (c *LogoutCommand) Help() string {
	return `Usage: hermes-client logout [options]

  Ends the server-side session and clears the local one. The local session
  is cleared even when the server cannot be reached.` +
		c.Flags().Help()
}

func (c *LogoutCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *LogoutCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	if err := c.Services.Auth.Logout(context.Background()); err != nil {
		c.Log.Warn("server logout failed", "error", err)
	}
	c.Auth.Logout()

	ui.Info("Logged out.")
	return 0
}
