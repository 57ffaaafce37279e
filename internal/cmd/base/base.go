// Package base holds the plumbing shared by all ninox CLI commands.
package base

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ninoxdb/ninox-go/internal/config"
	"github.com/ninoxdb/ninox-go/pkg/ninox"
	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

// EnvConfig names the config file when -config is not given.
const EnvConfig = "NINOX_CONFIG"

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
	Fs  afero.Fs

	// Out receives Raw output. The UI adds a newline to every message.
	Out io.Writer

	FlagWorkspace string
	FlagDatabase  string
	FlagTable     string
	FlagRecord    string

	flagConfig   string
	flagFormat   string
	flagLogLevel string
}

// NewCommand creates a Command using the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
		Out: os.Stdout,
	}
}

// CommonFlags registers -config, -format and -log-level.
func (c *Command) CommonFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"[NINOX_CONFIG] Path to an HCL config file",
	)
	f.StringVar(
		&c.flagFormat, "format", "json",
		"Output format: json or yaml",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error",
	)
}

// Scope selects which identifier flags a command accepts.
type Scope int

const (
	ScopeWorkspace Scope = iota + 1
	ScopeDatabase
	ScopeTable
	ScopeRecord
)

// ScopeFlags registers the identifier flags up to and including s.
func (c *Command) ScopeFlags(f *FlagSet, s Scope) {
	if s >= ScopeWorkspace {
		f.StringVar(&c.FlagWorkspace, "workspace", "", "Workspace (team) ID")
	}
	if s >= ScopeDatabase {
		f.StringVar(&c.FlagDatabase, "database", "", "Database ID")
	}
	if s >= ScopeTable {
		f.StringVar(&c.FlagTable, "table", "", "Table ID")
	}
	if s >= ScopeRecord {
		f.StringVar(&c.FlagRecord, "record", "", "Record ID")
	}
}

// RequireScope checks that every identifier flag up to s is set.
func (c *Command) RequireScope(s Scope) error {
	var missing []string
	if s >= ScopeWorkspace && c.FlagWorkspace == "" {
		missing = append(missing, "-workspace")
	}
	if s >= ScopeDatabase && c.FlagDatabase == "" {
		missing = append(missing, "-database")
	}
	if s >= ScopeTable && c.FlagTable == "" {
		missing = append(missing, "-table")
	}
	if s >= ScopeRecord && c.FlagRecord == "" {
		missing = append(missing, "-record")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Client loads the configuration and builds a Ninox client. Workspace and
// database flags left empty are filled from the config file.
func (c *Command) Client() (*ninox.Client, error) {
	path := c.flagConfig
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.FlagWorkspace == "" {
		c.FlagWorkspace = cfg.Workspace
	}
	if c.FlagDatabase == "" {
		c.FlagDatabase = cfg.Database
	}

	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	apiCfg, err := cfg.APIConfig()
	if err != nil {
		return nil, err
	}
	return ninox.New(apiCfg,
		ninox.WithLogger(c.Log.Named("api")),
		ninox.WithFs(c.Fs),
	)
}

// Context returns a context cancelled on SIGINT or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Raw is written to Out byte for byte, ignoring -format.
type Raw []byte

// Output writes v in the selected format and returns the exit code.
func (c *Command) Output(v any) int {
	if raw, ok := v.(Raw); ok {
		if _, err := c.Out.Write(raw); err != nil {
			c.UI.Error(fmt.Sprintf("error writing output: %v", err))
			return 1
		}
		return 0
	}

	var (
		out []byte
		err error
	)
	switch c.flagFormat {
	case "yaml":
		out, err = yaml.Marshal(v)
	case "json", "":
		out, err = json.MarshalIndent(v, "", "  ")
	default:
		err = fmt.Errorf("unsupported format %q", c.flagFormat)
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("error rendering output: %v", err))
		return 1
	}

	c.UI.Output(strings.TrimRight(string(out), "\n"))
	return 0
}

// Fail reports err and returns the exit code.
func (c *Command) Fail(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindHTTPStatus {
		c.UI.Error(fmt.Sprintf("ninox returned status %d: %s", apiErr.StatusCode, apiErr.Body))
		return 1
	}
	c.UI.Error(fmt.Sprintf("error: %v", err))
	return 1
}

// ReadData parses a JSON argument. A leading "@" reads the JSON from the
// named file.
func (c *Command) ReadData(arg string) (any, error) {
	raw := []byte(arg)
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		data, err := afero.ReadFile(c.Fs, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		raw = data
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return v, nil
}

// Execute parses args, checks the identifier flags up to scope, runs fn
// with a fresh client and prints its result.
func (c *Command) Execute(
	f *FlagSet, args []string, scope Scope,
	fn func(ctx context.Context, client *ninox.Client) (any, error),
) int {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	if err := c.RequireScope(scope); err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	result, err := fn(ctx, client)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
