package auth

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/models"
)

type LoginCommand struct {
	*base.Command

	flagEmail    string
	flagPassword string
}

func (c *LoginCommand) Synopsis() string {
	return "Sign in to Hermes"
}

func (c *LoginCommand) Help() string {
	return `Usage: hermes-client login [options]

  Signs in with an email and password and stores the session locally.
  The password is prompted for when -password is not set.` +
		c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.StringVar(&c.flagEmail, "email", "", "(Required) Account email address.")
	f.StringVar(&c.flagPassword, "password", "", "Account password.")

	return f
}

func (c *LoginCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagEmail == "" {
		ui.Error("email flag is required")
		return 1
	}
	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	password := c.flagPassword
	if password == "" {
		var err error
		if password, err = ui.AskSecret("Password:"); err != nil {
			ui.Error(fmt.Sprintf("error reading password: %v", err))
			return 1
		}
	}

	user, err := c.Services.Auth.Login(context.Background(), models.LoginRequest{
		Email:    strings.TrimSpace(c.flagEmail),
		Password: password,
	})
	if err != nil {
		return c.Fail(fmt.Errorf("login failed: %w", err))
	}
	c.Auth.SetUser(user)

	ui.Info(fmt.Sprintf("Logged in as %s.", displayName(user)))
	return 0
}

func displayName(u *models.User) string {
	if u == nil {
		return "unknown user"
	}
	if u.Name != "" {
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	}
	return u.Email
}
