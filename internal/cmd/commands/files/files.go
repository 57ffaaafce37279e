package files

import (
	"context"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/ninoxdb/ninox-go/internal/cmd/base"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage record attachments"
}

func (c *Command) Help() string {
	return `Usage: ninox files <subcommand> [options] [args]

  This command groups subcommands for the files attached to a record.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List the files attached to a record"
}

func (c *ListCommand) Help() string {
	return `Usage: ninox files list [options]` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files list", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *ListCommand) Run(args []string) int {
	return c.Execute(c.Flags(), args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			return client.GetFilesMetadata(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord)
		})
}

type MetadataCommand struct {
	*base.Command
}

func (c *MetadataCommand) Synopsis() string {
	return "Show the metadata of one attachment"
}

func (c *MetadataCommand) Help() string {
	return `Usage: ninox files metadata [options] <name>` + c.Flags().Help()
}

func (c *MetadataCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files metadata", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *MetadataCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			name, err := fileName(f)
			if err != nil {
				return nil, err
			}
			return client.GetFileMetadata(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, name)
		})
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete an attachment"
}

func (c *DeleteCommand) Help() string {
	return `Usage: ninox files delete [options] <name>` + c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files delete", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			name, err := fileName(f)
			if err != nil {
				return nil, err
			}
			return client.DeleteFile(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, name)
		})
}

type UploadCommand struct {
	*base.Command
}

func (c *UploadCommand) Synopsis() string {
	return "Attach a local file to a record"
}

func (c *UploadCommand) Help() string {
	return `Usage: ninox files upload [options] <path>

  Uploads the file at path. It is stored under its base name.` + c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files upload", flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	return f
}

func (c *UploadCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			path, err := fileName(f)
			if err != nil {
				return nil, err
			}
			return client.UploadFile(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, path)
		})
}

// GetCommand downloads an attachment, or its thumbnail when Thumbnail is
// set.
type GetCommand struct {
	*base.Command

	Thumbnail bool

	flagOut string
}

func (c *GetCommand) Synopsis() string {
	if c.Thumbnail {
		return "Download the thumbnail of an attachment"
	}
	return "Download an attachment"
}

func (c *GetCommand) Help() string {
	return `Usage: ninox files ` + c.name() + ` [options] <name>

  Writes the content to -out, or to standard output when -out is empty.` + c.Flags().Help()
}

func (c *GetCommand) name() string {
	if c.Thumbnail {
		return "thumbnail"
	}
	return "get"
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("files "+c.name(), flag.ContinueOnError))
	c.CommonFlags(f)
	c.ScopeFlags(f, base.ScopeRecord)
	f.StringVar(&c.flagOut, "out", "", "File to write the content to")
	return f
}

func (c *GetCommand) Run(args []string) int {
	f := c.Flags()
	return c.Execute(f, args, base.ScopeRecord,
		func(ctx context.Context, client *ninox.Client) (any, error) {
			name, err := fileName(f)
			if err != nil {
				return nil, err
			}

			get := client.GetFile
			if c.Thumbnail {
				get = client.GetFileThumbnail
			}
			data, err := get(ctx, c.FlagWorkspace, c.FlagDatabase, c.FlagTable, c.FlagRecord, name)
			if err != nil {
				return nil, err
			}

			if c.flagOut == "" {
				return base.Raw(data), nil
			}
			if err := afero.WriteFile(c.Fs, c.flagOut, data, 0o644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", c.flagOut, err)
			}
			c.Log.Debug("wrote file", "path", c.flagOut, "bytes", len(data))
			return map[string]any{"path": c.flagOut, "bytes": len(data)}, nil
		})
}

func fileName(f *base.FlagSet) (string, error) {
	if f.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one file argument, got %d", f.NArg())
	}
	return f.Arg(0), nil
}
