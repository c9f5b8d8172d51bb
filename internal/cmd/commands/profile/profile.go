package profile

import (
	"context"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/models"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage your profile"
}

func (c *Command) Help() string {
	return `Usage: hermes-client profile <subcommand> [options] [args]

  This command groups subcommands for the signed-in user's profile.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type UpdateCommand struct {
	*base.Command

	name      optionalString
	bio       optionalString
	avatarURL optionalString
}

func (c *UpdateCommand) Synopsis() string {
	return "Update your profile"
}

func (c *UpdateCommand) Help() string {
	return `Usage: hermes-client profile update [options]

  Updates the given profile fields. Fields whose flag is not set are left
  unchanged. The stored session is refreshed with the updated profile.` +
		c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("profile update", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.Var(&c.name, "name", "Display name.")
	f.Var(&c.bio, "bio", "Short biography. An empty value clears it.")
	f.Var(&c.avatarURL, "avatar-url", "Avatar image URL.")

	return f
}

func (c *UpdateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	update := models.ProfileUpdate{
		Name:      c.name.ptr(),
		Bio:       c.bio.ptr(),
		AvatarURL: c.avatarURL.ptr(),
	}
	if update.Name == nil && update.Bio == nil && update.AvatarURL == nil {
		ui.Error("nothing to update, set at least one of -name, -bio or -avatar-url")
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

	user, err := c.Services.Users.UpdateProfile(context.Background(), update)
	if err != nil {
		return c.Fail(fmt.Errorf("error updating profile: %w", err))
	}
	if user != nil {
		c.Auth.SetUser(user)
	}

	if err := c.Output(user); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

// optionalString is a flag.Value that remembers whether it was set.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value, s.set = v, true
	return nil
}

func (s *optionalString) ptr() *string {
	if !s.set {
		return nil
	}
	v := s.value
	return &v
}
