package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/changes"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/databases"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/files"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/query"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/records"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/tables"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/version"
	"github.com/ninoxdb/ninox-go/internal/cmd/commands/workspaces"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := func() *base.Command { return base.NewCommand(log, ui) }

	Commands = map[string]cli.CommandFactory{
		"workspaces": func() (cli.Command, error) {
			return &workspaces.Command{Command: b()}, nil
		},
		"databases": func() (cli.Command, error) {
			return &databases.Command{Command: b()}, nil
		},
		"tables": func() (cli.Command, error) {
			return &tables.Command{Command: b()}, nil
		},

		"records": func() (cli.Command, error) {
			return &records.Command{Command: b()}, nil
		},
		"records list": func() (cli.Command, error) {
			return &records.ListCommand{Command: b()}, nil
		},
		"records get": func() (cli.Command, error) {
			return &records.GetCommand{Command: b()}, nil
		},
		"records update": func() (cli.Command, error) {
			return &records.UpdateCommand{Command: b()}, nil
		},
		"records search": func() (cli.Command, error) {
			return &records.SearchCommand{Command: b()}, nil
		},
		"records upsert": func() (cli.Command, error) {
			return &records.UpsertCommand{Command: b()}, nil
		},
		"records delete": func() (cli.Command, error) {
			return &records.DeleteCommand{Command: b()}, nil
		},

		"query": func() (cli.Command, error) {
			return &query.Command{Command: b()}, nil
		},
		"exec": func() (cli.Command, error) {
			return &query.ExecCommand{Command: b()}, nil
		},
		"changes": func() (cli.Command, error) {
			return &changes.Command{Command: b()}, nil
		},

		"files": func() (cli.Command, error) {
			return &files.Command{Command: b()}, nil
		},
		"files list": func() (cli.Command, error) {
			return &files.ListCommand{Command: b()}, nil
		},
		"files get": func() (cli.Command, error) {
			return &files.GetCommand{Command: b()}, nil
		},
		"files thumbnail": func() (cli.Command, error) {
			return &files.GetCommand{Command: b(), Thumbnail: true}, nil
		},
		"files metadata": func() (cli.Command, error) {
			return &files.MetadataCommand{Command: b()}, nil
		},
		"files delete": func() (cli.Command, error) {
			return &files.DeleteCommand{Command: b()}, nil
		},
		"files upload": func() (cli.Command, error) {
			return &files.UploadCommand{Command: b()}, nil
		},

		"version": func() (cli.Command, error) {
			return &version.Command{Command: b()}, nil
		},
	}
}
