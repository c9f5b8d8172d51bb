package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	authcmd "github.com/hashicorp-forge/hermes-client/internal/cmd/commands/auth"
	"github.com/hashicorp-forge/hermes-client/internal/cmd/commands/invitations"
	"github.com/hashicorp-forge/hermes-client/internal/cmd/commands/notifications"
	"github.com/hashicorp-forge/hermes-client/internal/cmd/commands/presence"
	"github.com/hashicorp-forge/hermes-client/internal/cmd/commands/profile"
	versioncmd "github.com/hashicorp-forge/hermes-client/internal/cmd/commands/version"
	"github.com/hashicorp-forge/hermes-client/internal/cmd/commands/workspace"
)

// Commands returns the command factories of the CLI. Each invocation gets a
// fresh base.Command that is closed once the command has run.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	register := func(newCommand func(*base.Command) cli.Command) cli.CommandFactory {
		return func() (cli.Command, error) {
			b := &base.Command{Log: log, UI: ui}
			return &closingCommand{Command: newCommand(b), base: b}, nil
		}
	}

	return map[string]cli.CommandFactory{
		"activity": register(func(b *base.Command) cli.Command {
			return &workspace.ActivityCommand{Command: b}
		}),
		"capabilities": register(func(b *base.Command) cli.Command {
			return &workspace.CapabilitiesCommand{Command: b}
		}),
		"files": register(func(b *base.Command) cli.Command {
			return &workspace.FilesCommand{Command: b}
		}),
		"files check": register(func(b *base.Command) cli.Command {
			return &workspace.FilesCheckCommand{Command: b}
		}),
		"files view": register(func(b *base.Command) cli.Command {
			return &workspace.FilesViewCommand{Command: b}
		}),
		"invitations": register(func(b *base.Command) cli.Command {
			return &invitations.Command{Command: b}
		}),
		"invitations respond": register(func(b *base.Command) cli.Command {
			return &invitations.RespondCommand{Command: b}
		}),
		"invitations send": register(func(b *base.Command) cli.Command {
			return &invitations.SendCommand{Command: b}
		}),
		"login": register(func(b *base.Command) cli.Command {
			return &authcmd.LoginCommand{Command: b}
		}),
		"logout": register(func(b *base.Command) cli.Command {
			return &authcmd.LogoutCommand{Command: b}
		}),
		"notifications": register(func(b *base.Command) cli.Command {
			return &notifications.Command{Command: b}
		}),
		"notifications read": register(func(b *base.Command) cli.Command {
			return &notifications.ReadCommand{Command: b}
		}),
		"notifications read-all": register(func(b *base.Command) cli.Command {
			return &notifications.ReadAllCommand{Command: b}
		}),
		"presence": register(func(b *base.Command) cli.Command {
			return &presence.Command{Command: b}
		}),
		"presence check": register(func(b *base.Command) cli.Command {
			return &presence.CheckCommand{Command: b}
		}),
		"presence heartbeat": register(func(b *base.Command) cli.Command {
			return &presence.HeartbeatCommand{Command: b}
		}),
		"profile": register(func(b *base.Command) cli.Command {
			return &profile.Command{Command: b}
		}),
		"profile update": register(func(b *base.Command) cli.Command {
			return &profile.UpdateCommand{Command: b}
		}),
		"signup": register(func(b *base.Command) cli.Command {
			return &authcmd.SignupCommand{Command: b}
		}),
		"version": register(func(b *base.Command) cli.Command {
			return &versioncmd.Command{Command: b}
		}),
		"whoami": register(func(b *base.Command) cli.Command {
			return &authcmd.WhoamiCommand{Command: b}
		}),
	}
}

type closingCommand struct {
	cli.Command
	base *base.Command
}

func (c *closingCommand) Run(args []string) int {
	code := c.Command.Run(args)
	if err := c.base.Close(); err != nil {
		c.base.Log.Warn("failed to close local state", "error", err)
	}
	return code
}
