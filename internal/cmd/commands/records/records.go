package records

import (
	"context"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Read and modify table records"
}

func (c *Command) Help() string {
	return `Usage: ninox records <subcommand> [options] [args]

  This command groups subcommands for working with the records of a table.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// styleFlags holds the rendering options shared by the read commands.
type styleFlags struct {
	choiceStyle string
	dateStyle   string
}

func (s *styleFlags) register(f *base.FlagSet, withDate bool) {
	f.StringVar(&s.choiceStyle, "choice-style", string(ninox.ChoiceStyleID),
		"How choice fields are rendered: id or names")
	if withDate {
		f.StringVar(&s.dateStyle, "date-style", string(ninox.DateStyleID),
			"How date fields are rendered: id or iso")
	}
}

func (s *styleFlags) options() []ninox.RecordOption {
	opts := []ninox.RecordOption{ninox.WithChoiceStyle(ninox.ChoiceStyle(s.choiceStyle))}
	if s.dateStyle != "" {
		opts = append(opts, ninox.WithDateStyle(ninox.DateStyle(s.dateStyle)))
	}
	return opts
}

type ListCommand struct {
	*base.Command

	styles styleFlags
}

func (c *ListCommand) Synopsis() string {
	return "List the records of a table"
}

func (c *ListCommand) Help() string {
	return `Usage: ninox records list -workspace=<id> -database=<id> -table=<id>` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records list", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeTable)
	c.styles.register(f, false)
	return f
}

func (c *ListCommand) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeTable,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			return client.GetRecords(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.styles.options()...)
		})
}

type GetCommand struct {
	*base.Command

	styles styleFlags
}

func (c *GetCommand) Synopsis() string {
	return "Show a single record"
}

func (c *GetCommand) Help() string {
	return `Usage: ninox records get -workspace=<id> -database=<id> -table=<id> -record=<id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records get", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	c.styles.register(f, false)
	return f
}

func (c *GetCommand) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			return client.GetRecord(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, c.styles.options()...)
		})
}

type SearchCommand struct {
	*base.Command

	styles styleFlags
}

func (c *SearchCommand) Synopsis() string {
	return "Search the records of a table"
}

func (c *SearchCommand) Help() string {
	return `Usage: ninox records search [options] <query>

  Searches a table. The query is a JSON filter object, a JSON string
  holding a Ninox expression, or @file to read the JSON from a file.` + c.Flags().Help()
}

func (c *SearchCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records search", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeTable)
	c.styles.register(f, true)
	return f
}

func (c *SearchCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeTable,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			query, err := dataArg(c.Command, f)
			if err != nil {
				return nil, err
			}
			return client.SearchRecords(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, query, c.styles.options()...)
		})
}

type UpdateCommand struct {
	*base.Command
}

func (c *UpdateCommand) Synopsis() string {
	return "Update the fields of a record"
}

func (c *UpdateCommand) Help() string {
	return `Usage: ninox records update [options] <json|@file>

  Updates a record, e.g. '{"fields":{"Name":"Ada"}}'.` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records update", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			data, err := dataArg(c.Command, f)
			if err != nil {
				return nil, err
			}
			return client.UpdateRecord(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, data)
		})
}

type UpsertCommand struct {
	*base.Command
}

func (c *UpsertCommand) Synopsis() string {
	return "Create or update records"
}

func (c *UpsertCommand) Help() string {
	return `Usage: ninox records upsert [options] <json|@file>

  Sends a JSON array of records. Records without an id are created, the
  others are updated.` + c.Flags().Help()
}

func (c *UpsertCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records upsert", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeTable)
	return f
}

func (c *UpsertCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeTable,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			data, err := dataArg(c.Command, f)
			if err != nil {
				return nil, err
			}
			return client.UpsertRecords(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, data)
		})
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete one record, or several given as arguments"
}

func (c *DeleteCommand) Help() string {
	return `Usage: ninox records delete -record=<id> [options]
       ninox records delete [options] <id> <id>...

  Deletes a single record with -record, or all record ids given as
  arguments in one batch request.` + c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("records delete", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeTable,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			if c.FlagRecord != "" {
				return client.DeleteRecord(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord)
			}
			if f.NArg() == 0 {
				return nil, fmt.Errorf("either -record or at least one record id argument is required")
			}
			return client.DeleteRecords(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, f.Args())
		})
}

// dataArg parses the single positional JSON argument.
func dataArg(c *base.Command, f *base.FlagSet) (any, error) {
	if f.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one JSON argument, got %d", f.NArg())
	}
	return c.ReadData(f.Arg(0))
}
