package invitations

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type RespondCommand struct {
	*base.Command

	flagAccept  bool
	flagDecline bool
}

func (c *RespondCommand) Synopsis() string {
	return "Accept or decline an invitation"
}

func (c *RespondCommand) Help() string {
	return `Usage: hermes-client invitations respond (-accept | -decline) <invitation-id>` +
		c.Flags().Help()
}

func (c *RespondCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invitations respond", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.BoolVar(&c.flagAccept, "accept", false, "Accept the invitation.")
	f.BoolVar(&c.flagDecline, "decline", false, "Decline the invitation.")

	return f
}

func (c *RespondCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagAccept == c.flagDecline {
		ui.Error("exactly one of -accept or -decline is required")
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one argument: <invitation-id>")
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

	if err := c.Services.Invitations.Respond(context.Background(), flags.Arg(0), c.flagAccept); err != nil {
		return c.Fail(fmt.Errorf("error responding to invitation: %w", err))
	}

	if c.flagAccept {
		ui.Info("Invitation accepted.")
	} else {
		ui.Info("Invitation declined.")
	}
	return 0
}
