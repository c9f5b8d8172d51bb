package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type ActivityCommand struct {
	*base.Command
}

func (c *ActivityCommand) Synopsis() string {
	return "List a workspace's activity log"
}

func (c *ActivityCommand) Help() string {
	return `Usage: hermes-client activity [options] <workspace-id>

  Prints every activity log entry of the workspace.` +
		c.Flags().Help()
}

func (c *ActivityCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("activity", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *ActivityCommand) Run(args []string) int {
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
	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	logs, err := c.Services.ActivityLogs.GetAll(context.Background(), flags.Arg(0))
	if err != nil {
		return c.Fail(fmt.Errorf("error fetching activity log: %w", err))
	}

	if err := c.Output(logs); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
