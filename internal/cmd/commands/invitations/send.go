package invitations

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/permissions"
)

type SendCommand struct {
	*base.Command

	flagRole string
}

func (c *SendCommand) Synopsis() string {
	return "Invite someone to a workspace"
}

func (c *SendCommand) Help() string {
	return `Usage: hermes-client invitations send [options] <workspace-id> <email>

  Invites email to the workspace. Archived workspaces do not accept new
  members, so the workspace is loaded first and the invitation is refused
  locally when it is archived.` +
		c.Flags().Help()
}

func (c *SendCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invitations send", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.StringVar(&c.flagRole, "role", "", "Role granted to the invitee.")

	return f
}

func (c *SendCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("expected two arguments: <workspace-id> <email>")
		return 1
	}
	workspaceID, email := flags.Arg(0), strings.TrimSpace(flags.Arg(1))

	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}
	if err := c.RequireSession(); err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	if _, err := c.Workspaces.Load(ctx, workspaceID); err != nil {
		// The server has the final word when the workspace state is unknown.
		c.Log.Warn("could not load workspace before inviting", "workspace_id", workspaceID, "error", err)
	}
	if caps := permissions.ForWorkspace(c.Workspaces, workspaceID); !caps.CanInviteMember {
		ui.Error("cannot invite members to an archived workspace")
		return 1
	}

	if err := c.Services.Invitations.Send(ctx, workspaceID, models.SendInvitationRequest{
		Email: email,
		Role:  c.flagRole,
	}); err != nil {
		return c.Fail(fmt.Errorf("error sending invitation: %w", err))
	}

	ui.Info(fmt.Sprintf("Invitation sent to %s.", email))
	return 0
}
