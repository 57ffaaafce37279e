package query

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
)

// Command evaluates a read-only Ninox expression.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Evaluate a read-only Ninox expression"
}

func (c *Command) Help() string {
	return `Usage: ninox query [options] <expression>

  Evaluates a Ninox script expression against a database without
  changing it, e.g. 'count(select Customers)'.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("query", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeDatabase)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeDatabase,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			expr, err := expression(f)
			if err != nil {
				return nil, err
			}
			return client.Query(ctx, c.FlagWorkspace, c.FlagDatabase, expr)
		})
}

// ExecCommand evaluates an expression that may write to the database.
type ExecCommand struct {
	*base.Command
}

func (c *ExecCommand) Synopsis() string {
	return "Evaluate a Ninox expression that may modify data"
}

func (c *ExecCommand) Help() string {
	return `Usage: ninox exec [options] <expression>

  Evaluates a Ninox script expression that is allowed to create, change
  or delete records.` + c.Flags().Help()
}

func (c *ExecCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("exec", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeDatabase)
	return f
}

func (c *ExecCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeDatabase,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			expr, err := expression(f)
			if err != nil {
				return nil, err
			}
			return client.Exec(ctx, c.FlagWorkspace, c.FlagDatabase, expr)
		})
}

// expression joins the positional arguments so unquoted expressions work.
func expression(f *base.FlagSet) (string, error) {
	expr := strings.TrimSpace(strings.Join(f.Args(), " "))
	if expr == "" {
		return "", fmt.Errorf("an expression argument is required")
	}
	return expr, nil
}
