package version

import (
	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: ninox version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output("ninox " + version.Version)
	return 0
}
