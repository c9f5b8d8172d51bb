package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/permissions"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

type CapabilitiesCommand struct {
	*base.Command
}

func (c *CapabilitiesCommand) Synopsis() string {
	return "Show what you may do in a workspace"
}

func (c *CapabilitiesCommand) Help() string {
	return `Usage: hermes-client capabilities [options] <workspace-id>

  Loads the workspace and prints the capabilities derived from its state.
  When the workspace cannot be loaded it is treated as not archived, the
  derived capabilities are still printed and the command exits with 1.` +
		c.Flags().Help()
}

func (c *CapabilitiesCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("capabilities", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *CapabilitiesCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one argument: <workspace-id>")
		return 1
	}
	workspaceID := flags.Arg(0)

	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	_, loadErr := c.Workspaces.Load(context.Background(), workspaceID)
	if loadErr != nil && request.IsUnauthorized(loadErr) {
		return c.Fail(loadErr)
	}

	if err := c.Output(permissions.ForWorkspace(c.Workspaces, workspaceID)); err != nil {
		ui.Error(err.Error())
		return 1
	}

	if loadErr != nil {
		c.Log.Debug("workspace load failed", "workspace_id", workspaceID, "error", loadErr)
		ui.Warn(fmt.Sprintf("workspace could not be loaded: %v", loadErr))
		return 1
	}
	return 0
}
