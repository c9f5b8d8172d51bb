package version

import (
	"fmt"

	"github.com/hashicorp-forge/hermes-client/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-client/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the client version"
}

func (c *Command) Help() string {
	return "Usage: hermes-client version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(fmt.Sprintf("hermes-client v%s", version.Version))
	return 0
}
