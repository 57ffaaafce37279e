package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ninoxdb/ninox-go/internal/version"
)

// Method is one of the HTTP verbs the Ninox API uses.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is a supported verb.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

// FilePayload is a file sent as the multipart field "file".
type FilePayload struct {
	Name   string
	Reader io.Reader
}

// Request describes a single call to the API.
type Request struct {
	Method   Method
	Endpoint string            // Path below {base_url}/{version}/
	Query    map[string]string // Optional query parameters
	Body     any               // JSON encoded when non-nil
	File     *FilePayload      // Sent as multipart/form-data when non-nil
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client built from the Config.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.client = client
		}
	}
}

// Adapter performs authenticated requests against the Ninox REST API and
// turns every failure into an *Error. It holds no state besides its
// configuration and is safe for concurrent use.
type Adapter struct {
	config Config
	client *http.Client
	logger hclog.Logger
	root   string
	base   *url.URL
}

// NewAdapter creates an Adapter. Empty BaseURL and Version fields fall back
// to DefaultConfig.
func NewAdapter(cfg Config, opts ...Option) (*Adapter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ninox config: %w", err)
	}

	root := cfg.BaseURL + "/" + cfg.Version
	base, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("invalid ninox config: %w", err)
	}

	a := &Adapter{
		config: cfg,
		logger: hclog.NewNullLogger(),
		root:   root,
		base:   base,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.client == nil {
		a.client = cfg.NewHTTPClient()
	}

	return a, nil
}

// Logger returns the logger the Adapter writes to.
func (a *Adapter) Logger() hclog.Logger {
	return a.logger
}

// URL returns {base_url}/{version}/{endpoint}. The endpoint is used as is.
func (a *Adapter) URL(endpoint string) string {
	return a.root + "/" + endpoint
}

// Do performs the request and returns the decoded JSON body.
func (a *Adapter) Do(ctx context.Context, r Request) (any, error) {
	logger := a.logger.With("request_id", uuid.NewString())
	reqURL := a.requestURL(r)

	raw, err := a.roundTrip(ctx, logger, reqURL, r)
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Error("failed to decode response", "method", r.Method, "url", reqURL, "body", string(raw))
		return nil, &Error{
			Kind:   KindDecode,
			Method: r.Method,
			URL:    reqURL,
			Body:   string(raw),
			Err:    err,
		}
	}

	return result, nil
}

// DoRaw performs the request and returns the undecoded success body, for
// endpoints that serve file contents.
func (a *Adapter) DoRaw(ctx context.Context, r Request) ([]byte, error) {
	logger := a.logger.With("request_id", uuid.NewString())
	raw, err := a.roundTrip(ctx, logger, a.requestURL(r), r)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Get issues a GET request.
func (a *Adapter) Get(ctx context.Context, endpoint string, query map[string]string) (any, error) {
	return a.Do(ctx, Request{Method: MethodGet, Endpoint: endpoint, Query: query})
}

// Post issues a POST request with an optional JSON body or file.
func (a *Adapter) Post(ctx context.Context, endpoint string, body any, file *FilePayload) (any, error) {
	return a.Do(ctx, Request{Method: MethodPost, Endpoint: endpoint, Body: body, File: file})
}

// Put issues a PUT request.
func (a *Adapter) Put(ctx context.Context, endpoint string, body any) (any, error) {
	return a.Do(ctx, Request{Method: MethodPut, Endpoint: endpoint, Body: body})
}

// Delete issues a DELETE request.
func (a *Adapter) Delete(ctx context.Context, endpoint string) (any, error) {
	return a.Do(ctx, Request{Method: MethodDelete, Endpoint: endpoint})
}

func (a *Adapter) requestURL(r Request) string {
	u := a.URL(r.Endpoint)
	if len(r.Query) == 0 {
		return u
	}
	return u + "?" + queryValues(r.Query).Encode()
}

// target is the URL the request is sent to. Unlike requestURL, the path is
// escaped, so identifiers holding "%", "?" or spaces reach the server as
// given.
func (a *Adapter) target(r Request) *url.URL {
	u := *a.base
	u.Path = strings.TrimSuffix(a.base.Path, "/") + "/" + r.Endpoint
	u.RawPath = ""
	u.RawQuery = queryValues(r.Query).Encode()
	return &u
}

func queryValues(query map[string]string) url.Values {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	return values
}

// roundTrip sends the request and returns the body of a 2xx response. Any
// other outcome is returned as an *Error.
func (a *Adapter) roundTrip(ctx context.Context, logger hclog.Logger, reqURL string, r Request) ([]byte, error) {
	fail := func(err error) ([]byte, error) {
		logger.Error("request failed", "method", r.Method, "url", reqURL, "error", err)
		return nil, &Error{Kind: KindTransport, Method: r.Method, URL: reqURL, Err: err}
	}

	if !r.Method.Valid() {
		return fail(fmt.Errorf("unsupported method %q", string(r.Method)))
	}

	if r.File != nil {
		logger.Debug("sending request",
			"method", r.Method, "url", reqURL, "file", r.File.Name, "query", r.Query)
		if r.Body != nil {
			logger.Warn("ignoring JSON body on multipart request", "method", r.Method, "url", reqURL)
		}
	} else {
		logger.Debug("sending request",
			"method", r.Method, "url", reqURL, "body", r.Body, "query", r.Query)
	}

	bodyReader, contentType, err := encodeBody(r)
	if err != nil {
		return fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.Method), a.target(r).String(), bodyReader)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "ninox-go/"+version.Version)

	resp, err := a.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("request failed with unexpected status",
			"method", r.Method, "url", reqURL, "status", resp.StatusCode, "body", string(respBody))
		return nil, &Error{
			Kind:       KindHTTPStatus,
			Method:     r.Method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// encodeBody returns the request body and its content type. Files win over
// JSON bodies.
func encodeBody(r Request) (io.Reader, string, error) {
	if r.File != nil {
		return encodeMultipart(r.File)
	}
	if r.Body == nil {
		return nil, "application/json", nil
	}

	bodyBytes, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(bodyBytes), "application/json", nil
}

func encodeMultipart(file *FilePayload) (io.Reader, string, error) {
	if file.Reader == nil {
		return nil, "", fmt.Errorf("file %q has no content", file.Name)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, "", fmt.Errorf("failed to read file %q: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
