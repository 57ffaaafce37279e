package changes

import (
	"context"
	"flag"
	"fmt"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
)

type Command struct {
	*base.Command

	flagSince string
}

func (c *Command) Synopsis() string {
	return "Show changes of a database, table or record"
}

func (c *Command) Help() string {
	return `Usage: ninox changes -since=<seq> [options]

  Lists the changes made after the given sequence number. Add -table to
  narrow the result to one table, and -record to one record.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("changes", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	f.StringVar(&c.flagSince, "since", "0", "Sequence number to list changes after")
	return f
}

func (c *Command) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeDatabase,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			if c.FlagRecord != "" && c.FlagTable == "" {
				return nil, fmt.Errorf("-record requires -table")
			}
			switch {
			case c.FlagRecord != "":
				return client.GetRecordChanges(ctx,
					c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, c.flagSince)
			case c.FlagTable != "":
				return client.GetTableChanges(ctx,
					c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.flagSince)
			default:
				return client.GetDatabaseChanges(ctx, c.FlagWorkspace, c.FlagDatabase, c.flagSince)
			}
		})
}
