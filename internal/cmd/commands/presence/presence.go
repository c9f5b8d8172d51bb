package presence

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Report and query online presence"
}

func (c *Command) Help() string {
	return `Usage: hermes-client presence <subcommand> [options] [args]

  This command groups subcommands for online presence.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type HeartbeatCommand struct {
	*base.Command

	flagInterval time.Duration
	flagCount    int
}

func (c *HeartbeatCommand) Synopsis() string {
	return "Report that you are online"
}

func (c *HeartbeatCommand) Help() string {
	return `Usage: hermes-client presence heartbeat [options]

  Sends a presence heartbeat. With -interval, heartbeats are sent
  repeatedly until -count is reached or the command is interrupted.` +
		c.Flags().Help()
}

func (c *HeartbeatCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("presence heartbeat", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.DurationVar(&c.flagInterval, "interval", 0, "Time between heartbeats. Zero sends a single one.")
	f.IntVar(&c.flagCount, "count", 0, "Stop after this many heartbeats. Zero means no limit.")

	return f
}

func (c *HeartbeatCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagInterval < 0 || c.flagCount < 0 {
		ui.Error("interval and count must not be negative")
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

	ctx := context.Background()
	if c.flagInterval == 0 {
		if err := c.Services.Presence.Heartbeat(ctx); err != nil {
			return c.Fail(fmt.Errorf("error sending heartbeat: %w", err))
		}
		ui.Info("Heartbeat sent.")
		return 0
	}

	ticker := time.NewTicker(c.flagInterval)
	defer ticker.Stop()

	for sent := 0; c.flagCount == 0 || sent < c.flagCount; sent++ {
		if sent > 0 {
			<-ticker.C
		}
		if err := c.Services.Presence.Heartbeat(ctx); err != nil {
			return c.Fail(fmt.Errorf("error sending heartbeat: %w", err))
		}
		c.Log.Debug("heartbeat sent", "count", sent+1)
	}

	ui.Info(fmt.Sprintf("Sent %d heartbeats.", c.flagCount))
	return 0
}

type CheckCommand struct {
	*base.Command
}

func (c *CheckCommand) Synopsis() string {
	return "Check which users are online"
}

func (c *CheckCommand) Help() string {
	return `Usage: hermes-client presence check [options] <user-id>...

  Prints the subset of the given users that are currently online.` +
		c.Flags().Help()
}

func (c *CheckCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("presence check", flag.ContinueOnError))
	c.GlobalFlags(f)
	return f
}

func (c *CheckCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("expected at least one user ID")
		return 1
	}
	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	online, err := c.Services.Presence.Check(context.Background(), flags.Args())
	if err != nil {
		return c.Fail(fmt.Errorf("error checking presence: %w", err))
	}
	if online == nil {
		online = []string{}
	}

	if err := c.Output(online); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
