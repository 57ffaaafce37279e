package workspaces

import (
	"flag"
	"fmt"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List workspaces or show one"
}

func (c *Command) Help() string {
	return `Usage: ninox workspaces [options]

  Lists the workspaces (teams) the API key can access. With -workspace,
  shows that workspace only.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("workspaces", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeWorkspace)
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	ctx, cancel := c.Context()
	defer cancel()

	var result any
	if c.FlagWorkspace == "" {
		result, err = client.GetWorkspaces(ctx)
	} else {
		result, err = client.GetWorkspace(ctx, c.FlagWorkspace)
	}
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
