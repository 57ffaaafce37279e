package tables

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
	return "List the tables of a database or show one table's schema"
}

func (c *Command) Help() string {
	return `Usage: ninox tables -workspace=<id> -database=<id> [options]

  Lists the tables of a database. With -table, shows the field definitions
  of that table.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tables", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeTable)
	return f
}

func (c *Command) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeDatabase,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			if c.FlagTable == "" {
				return client.GetSchemas(ctx, c.FlagWorkspace, c.FlagDatabase)
			}
			return client.GetSchema(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable)
		})
}
