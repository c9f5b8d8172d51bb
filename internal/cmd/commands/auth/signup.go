package auth

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/models"
)

type SignupCommand struct {
	*base.Command

	flagEmail    string
	flagName     string
	flagPassword string
	flagCode     string
}

func (c *SignupCommand) Synopsis() string {
	return "Create an account and verify its email address"
}

func (c *SignupCommand) Help() string {
	return `Usage: hermes-client signup [options]

  Registers an account, then asks for the verification code that was
  emailed to it. Once the code is accepted the new account is signed in.` +
		c.Flags().Help()
}

func (c *SignupCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("signup", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.StringVar(&c.flagEmail, "email", "", "(Required) Account email address.")
	f.StringVar(&c.flagName, "name", "", "Display name.")
	f.StringVar(&c.flagPassword, "password", "", "Account password. Prompted for when empty.")
	f.StringVar(&c.flagCode, "code", "", "Verification code. Prompted for when empty.")

	return f
}

func (c *SignupCommand) Run(args []string) int {
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

	ctx := context.Background()
	email := strings.TrimSpace(c.flagEmail)

	password := c.flagPassword
	if password == "" {
		var err error
		if password, err = ui.AskSecret("Password:"); err != nil {
			ui.Error(fmt.Sprintf("error reading password: %v", err))
			return 1
		}
	}

	if err := c.Services.Auth.Signup(ctx, models.SignupRequest{
		Email:    email,
		Password: password,
		Name:     c.flagName,
	}); err != nil {
		return c.Fail(fmt.Errorf("signup failed: %w", err))
	}

	// The pending verification holds the password only until this command
	// returns.
	c.Verification.SetWithPassword(email, password)
	defer c.Verification.Clear()

	code := c.flagCode
	if code == "" {
		var err error
		if code, err = ui.Ask(fmt.Sprintf("Verification code sent to %s:", email)); err != nil {
			ui.Error(fmt.Sprintf("error reading verification code: %v", err))
			return 1
		}
	}

	pending := c.Verification.State()
	if pending.Email == nil {
		ui.Error("no pending verification")
		return 1
	}
	if err := c.Services.Auth.VerifyEmail(ctx, models.VerifyEmailRequest{
		Email: *pending.Email,
		Code:  strings.TrimSpace(code),
	}); err != nil {
		return c.Fail(fmt.Errorf("email verification failed: %w", err))
	}
	c.Log.Debug("email verified", "email", *pending.Email)

	if pending.Password == nil {
		ui.Info("Email verified. Run \"hermes-client login\" to sign in.")
		return 0
	}

	user, err := c.Services.Auth.Login(ctx, models.LoginRequest{
		Email:    *pending.Email,
		Password: *pending.Password,
	})
	if err != nil {
		return c.Fail(fmt.Errorf("email verified but sign in failed: %w", err))
	}
	c.Auth.SetUser(user)

	ui.Info(fmt.Sprintf("Email verified. Logged in as %s.", displayName(user)))
	return 0
}
