package ninox

import (
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

// Client exposes one method per Ninox REST operation. Each method issues
// exactly one request through the Adapter and returns its result or error
// unchanged.
type Client struct {
	adapter *api.Adapter
	fs      afero.Fs
}

type options struct {
	logger     hclog.Logger
	httpClient *http.Client
	fs         afero.Fs
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger used by the underlying Adapter.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient replaces the HTTP client built from the Config.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithFs sets the filesystem UploadFile reads from. Defaults to the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// New creates a Client for the given account configuration.
func New(cfg api.Config, opts ...Option) (*Client, error) {
	o := collect(opts)

	var adapterOpts []api.Option
	if o.logger != nil {
		adapterOpts = append(adapterOpts, api.WithLogger(o.logger))
	}
	if o.httpClient != nil {
		adapterOpts = append(adapterOpts, api.WithHTTPClient(o.httpClient))
	}

	adapter, err := api.NewAdapter(cfg, adapterOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{adapter: adapter, fs: o.fs}, nil
}

// NewWithAdapter wraps an existing Adapter. Only WithFs is honoured.
func NewWithAdapter(adapter *api.Adapter, opts ...Option) *Client {
	o := collect(opts)
	return &Client{adapter: adapter, fs: o.fs}
}

// Adapter returns the underlying Adapter for endpoints the Client does
// not cover.
func (c *Client) Adapter() *api.Adapter {
	return c.adapter
}

func collect(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	return o
}

// path joins segments with "/". Identifiers are inserted verbatim.
func path(segments ...string) string {
	return strings.Join(segments, "/")
}

func workspacePath(workspaceID string) string {
	return path("teams", workspaceID)
}

func databasePath(workspaceID, databaseID string) string {
	return path(workspacePath(workspaceID), "databases", databaseID)
}

func tablePath(workspaceID, databaseID, tableID string) string {
	return path(databasePath(workspaceID, databaseID), "tables", tableID)
}

func recordPath(workspaceID, databaseID, tableID, recordID string) string {
	return path(tablePath(workspaceID, databaseID, tableID), "records", recordID)
}

func filesPath(workspaceID, databaseID, tableID, recordID string) string {
	return path(recordPath(workspaceID, databaseID, tableID, recordID), "files")
}
