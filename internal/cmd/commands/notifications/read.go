package notifications

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type ReadCommand struct {
	*base.Command
}

func (c *ReadCommand) Synopsis() string {
	return "Mark a notification as read"
}

func (c *ReadCommand) Help() string {
	return `Usage: hermes-client notifications read [options] <notification-id>` +
		c.Flags().Help()
}

func (c *ReadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notifications read", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *ReadCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one argument: <notification-id>")
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

	if err := c.Services.Notifications.MarkAsRead(context.Background(), flags.Arg(0)); err != nil {
		return c.Fail(fmt.Errorf("error marking notification as read: %w", err))
	}

	ui.Info("Notification marked as read.")
	return 0
}

type ReadAllCommand struct {
	*base.Command
}

func (c *ReadAllCommand) Synopsis() string {
	return "Mark every notification as read"
}

func (c *ReadAllCommand) Help() string {
	return `Usage: hermes-client notifications read-all [options]` +
		c.Flags().Help()
}

func (c *ReadAllCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notifications read-all", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *ReadAllCommand) Run(args []string) int {
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

	if err := c.Services.Notifications.MarkAllAsRead(context.Background()); err != nil {
		return c.Fail(fmt.Errorf("error marking notifications as read: %w", err))
	}

	ui.Info("All notifications marked as read.")
	return 0
}
