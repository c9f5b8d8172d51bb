package workspace

import (
	"context"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"
	"github.com/pkg/browser"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
)

type FilesCommand struct {
	*base.Command
}

func (c *FilesCommand) Synopsis() string {
	return "Work with workspace files"
}

func (c *FilesCommand) Help() string {
	return `Usage: hermes-client files <subcommand> [options] [args]

  This command groups subcommands for workspace files.`
}

func (c *FilesCommand) Run(args []string) int {
	return cli.RunResultHelp
}

type FilesViewCommand struct {
	*base.Command

	flagOpen bool

	// OpenURL opens a URL for the user. Defaults to the system browser.
	OpenURL func(url string) error
}

func (c *FilesViewCommand) Synopsis() string {
	return "Get a temporary link to a workspace file"
}

func (c *FilesViewCommand) Help() string {
	return `Usage: hermes-client files view [options] <workspace-id> <key>

  Resolves a presigned URL for the file stored under key and prints it.
  With -open the URL is opened in the default browser.` +
		c.Flags().Help()
}

func (c *FilesViewCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files view", flag.ContinueOnError))
	c.GlobalFlags(f)

	f.BoolVar(&c.flagOpen, "open", false, "Open the URL in the default browser.")

	return f
}

func (c *FilesViewCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 2 {
		ui.Error("expected two arguments: <workspace-id> <key>")
		return 1
	}
	if err := c.Init(); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	url, err := c.Services.Files.View(context.Background(), flags.Arg(0), flags.Arg(1))
	if err != nil {
		return c.Fail(fmt.Errorf("error resolving file: %w", err))
	}
	if url == "" {
		ui.Error("the server did not return a URL for this file")
		return 1
	}

	ui.Output(url)

	if c.flagOpen {
		open := c.OpenURL
		if open == nil {
			open = browser.OpenURL
		}
		if err := open(url); err != nil {
			ui.Error(fmt.Sprintf("error opening browser: %v", err))
			return 1
		}
	}
	return 0
}
