package databases

import (
	"context"
	"flag"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List the databases of a workspace or show one"
}

func (c *Command) Help() string {
	return `Usage: ninox databases -workspace=<id> [options]

  Lists the databases of a workspace. With -database, shows that database
  including its schema.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("databases", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeDatabase)
	return f
}

func (c *Command) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeWorkspace,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			if c.FlagDatabase == "" {
				return client.GetDatabases(ctx, c.FlagWorkspace)
			}
			return client.GetDatabase(ctx, c.FlagWorkspace, c.FlagDatabase)
		})
}
