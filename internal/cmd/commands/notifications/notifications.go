package notifications

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/models"
)

type Command struct {
	*base.Command

	flagUnread bool
}

func (c *Command) Synopsis() string {
	return "List your notifications"
}

func (c *Command) Help() string {
	return `Usage: hermes-client notifications [options]

  Lists the notifications of the signed-in user. Use the "read" and
  "read-all" subcommands to mark them as read.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("notifications", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.BoolVar(&c.flagUnread, "unread", false, "Only list unread notifications.")

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

	notifications, err := c.Services.Notifications.GetAll(context.Background())
	if err != nil {
		return c.Fail(fmt.Errorf("error fetching notifications: %w", err))
	}
	if c.flagUnread {
		notifications = unread(notifications)
	}

	if err := c.Output(notifications); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

func unread(all []models.Notification) []models.Notification {
	out := make([]models.Notification, 0, len(all))
	for _, n := range all {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}
