package workspace

import (
	"flag"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/pkg/services"
)

type FilesCheckCommand struct {
	*base.Command

	flagAvatar bool

	// Fs is where local files are read from. Defaults to the OS filesystem.
	Fs afero.Fs
}

func (c *FilesCheckCommand) Synopsis() string {
	return "Check a local file against the upload limits"
}

func (c *FilesCheckCommand) Help() string {
	return `Usage: hermes-client files check [options] <path>

  Checks a local file against the attachment size limit, or against the
  avatar size and image type limits with -avatar. Nothing is uploaded.` +
		c.Flags().Help()
}

func (c *FilesCheckCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files check", flag.ContinueOnError))

	f.BoolVar(&c.flagAvatar, "avatar", false, "Check against the avatar limits.")

	return f
}

func (c *FilesCheckCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one argument: <path>")
		return 1
	}
	path := flags.Arg(0)

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	info, err := fs.Stat(path)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading file: %v", err))
		return 1
	}
	if info.IsDir() {
		ui.Error(fmt.Sprintf("%s is a directory", path))
		return 1
	}

	if !c.flagAvatar {
		err = services.ValidateAttachment(info.Size())
	} else {
		var mimeType string
		if mimeType, err = sniffContentType(fs, path); err != nil {
			ui.Error(fmt.Sprintf("error reading file: %v", err))
			return 1
		}
		err = services.ValidateAvatar(info.Size(), mimeType)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("%s: %v", path, err))
		return 1
	}

	ui.Info(fmt.Sprintf("%s can be uploaded.", path))
	return 0
}

func sniffContentType(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
