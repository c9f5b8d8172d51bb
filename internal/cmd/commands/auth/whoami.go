package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type WhoamiCommand struct {
	*base.Command

	flagRefresh bool
}

func (c *WhoamiCommand) Synopsis() string {
	return "Show the signed-in user"
}

func (c *WhoamiCommand) Help() string {
	return `Usage: hermes-client whoami [options]

  Prints the locally stored session. With -refresh the profile is fetched
  from the server first and the stored copy is updated.` +
		c.Flags().Help()
}

func (c *WhoamiCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.BoolVar(&c.flagRefresh, "refresh", false, "Fetch the current profile from the server.")

	return f
}

func (c *WhoamiCommand) Run(args []string) int {
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
	if err := c.RequireSession(); err != nil {
		ui.Error(err.Error())
		return 1
	}

	if c.flagRefresh {
		user, err := c.Services.Users.Me(context.Background())
		if err != nil {
			return c.Fail(fmt.Errorf("error fetching profile: %w", err))
		}
		c.Auth.SetUser(user)
	}

	if err := c.Output(c.Auth.State()); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
