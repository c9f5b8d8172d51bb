package invitations

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List invitations addressed to you"
}

func (c *Command) Help() string {
	return `Usage: hermes-client invitations [options]

  Lists the workspace invitations addressed to the signed-in user. Use the
  "send" and "respond" subcommands to invite someone or answer an
  invitation.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invitations", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
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

	page, err := c.Services.Invitations.GetMine(context.Background())
	if err != nil {
		return c.Fail(fmt.Errorf("error fetching invitations: %w", err))
	}

	if err := c.Output(page); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
