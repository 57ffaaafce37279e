package ninox

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

type recordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Body        string
	ContentType string
	Filename    string
	FileContent string
}

// newRecordingServer answers every request with status and body and keeps
// the last request it saw.
func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*rec = recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			ContentType: r.Header.Get("Content-Type"),
		}
		if strings.HasPrefix(rec.ContentType, "multipart/form-data") {
			if file, header, err := r.FormFile("file"); err == nil {
				data, _ := io.ReadAll(file)
				_ = file.Close()
				rec.Filename = header.Filename
				rec.FileContent = string(data)
			}
		} else {
			data, _ := io.ReadAll(r.Body)
			rec.Body = string(data)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(api.Config{APIKey: "test-key", BaseURL: baseURL}, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_Endpoints(t *testing.T) {
	const (
		ws  = "w1"
		db  = "d1"
		tb  = "t1"
		rec = "r1"
	)
	records := "/v1/teams/w1/databases/d1/tables/t1/records"

	tests := []struct {
		name   string
		call   func(ctx context.Context, c *Client) (any, error)
		method string
		path   string
		query  map[string]string
		body   string
	}{
		{
			name:   "GetWorkspaces",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetWorkspaces(ctx) },
			method: http.MethodGet,
			path:   "/v1/teams",
		},
		{
			name:   "GetWorkspace",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetWorkspace(ctx, ws) },
			method: http.MethodGet,
			path:   "/v1/teams/w1",
		},
		{
			name:   "GetDatabases",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetDatabases(ctx, ws) },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases",
		},
		{
			name:   "GetDatabase",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetDatabase(ctx, ws, db) },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases/d1",
		},
		{
			name:   "Query",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.Query(ctx, ws, db, "select Customers") },
			method: http.MethodPost,
			path:   "/v1/teams/w1/databases/d1/query",
			body:   `{"query":"select Customers"}`,
		},
		{
			name:   "Exec",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.Exec(ctx, ws, db, "delete Customers") },
			method: http.MethodPost,
			path:   "/v1/teams/w1/databases/d1/exec",
			body:   `{"query":"delete Customers"}`,
		},
		{
			name:   "GetSchemas",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetSchemas(ctx, ws, db) },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases/d1/tables",
		},
		{
			name:   "GetSchema",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetSchema(ctx, ws, db, tb) },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases/d1/tables/t1",
		},
		{
			name:   "GetRecords",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetRecords(ctx, ws, db, tb) },
			method: http.MethodGet,
			path:   records,
			query:  map[string]string{"choiceStyle": "id"},
		},
		{
			name: "GetRecords with names",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.GetRecords(ctx, ws, db, tb, WithChoiceStyle(ChoiceStyleNames))
			},
			method: http.MethodGet,
			path:   records,
			query:  map[string]string{"choiceStyle": "names"},
		},
		{
			name:   "GetRecord",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetRecord(ctx, ws, db, tb, rec) },
			method: http.MethodGet,
			path:   records + "/r1",
			query:  map[string]string{"choiceStyle": "id"},
		},
		{
			name: "UpdateRecord",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpdateRecord(ctx, ws, db, tb, rec, map[string]any{"fields": map[string]any{"Name": "Ada"}})
			},
			method: http.MethodPut,
			path:   records + "/r1",
			body:   `{"fields":{"Name":"Ada"}}`,
		},
		{
			name: "SearchRecords",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.SearchRecords(ctx, ws, db, tb, map[string]any{"filters": map[string]any{"A": "x"}})
			},
			method: http.MethodPost,
			path:   records,
			query:  map[string]string{"choiceStyle": "id", "dateStyle": "id"},
			body:   `{"filters":{"A":"x"}}`,
		},
		{
			name: "SearchRecords with styles",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.SearchRecords(ctx, ws, db, tb, "Name = \"Ada\"",
					WithChoiceStyle(ChoiceStyleNames), WithDateStyle(DateStyleISO))
			},
			method: http.MethodPost,
			path:   records,
			query:  map[string]string{"choiceStyle": "names", "dateStyle": "iso"},
			body:   `"Name = \"Ada\""`,
		},
		{
			name: "UpsertRecords",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpsertRecords(ctx, ws, db, tb, []map[string]any{{"fields": map[string]any{"Name": "Ada"}}})
			},
			method: http.MethodPost,
			path:   records,
			body:   `[{"fields":{"Name":"Ada"}}]`,
		},
		{
			name:   "DeleteRecord",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.DeleteRecord(ctx, ws, db, tb, rec) },
			method: http.MethodDelete,
			path:   records + "/r1",
		},
		{
			name: "DeleteRecords",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.DeleteRecords(ctx, ws, db, tb, []int{1, 2, 3})
			},
			method: http.MethodPost,
			path:   records + "/delete",
			body:   `[1,2,3]`,
		},
		{
			name:   "GetDatabaseChanges",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetDatabaseChanges(ctx, ws, db, "42") },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases/d1/changes",
			query:  map[string]string{"sinceSq": "42"},
		},
		{
			name:   "GetTableChanges",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetTableChanges(ctx, ws, db, tb, "42") },
			method: http.MethodGet,
			path:   "/v1/teams/w1/databases/d1/tables/t1/changes",
			query:  map[string]string{"sinceSq": "42"},
		},
		{
			name: "GetRecordChanges",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.GetRecordChanges(ctx, ws, db, tb, rec, "42")
			},
			method: http.MethodGet,
			path:   records + "/r1/changes",
			query:  map[string]string{"sinceSq": "42"},
		},
		{
			name: "GetFile",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.GetFile(ctx, ws, db, tb, rec, "report.pdf")
			},
			method: http.MethodGet,
			path:   records + "/r1/files/report.pdf",
		},
		{
			name: "DeleteFile",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.DeleteFile(ctx, ws, db, tb, rec, "report.pdf")
			},
			method: http.MethodDelete,
			path:   records + "/r1/files/report.pdf",
		},
		{
			name:   "GetFilesMetadata",
			call:   func(ctx context.Context, c *Client) (any, error) { return c.GetFilesMetadata(ctx, ws, db, tb, rec) },
			method: http.MethodGet,
			path:   records + "/r1/files",
		},
		{
			name: "GetFileMetadata",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.GetFileMetadata(ctx, ws, db, tb, rec, "report.pdf")
			},
			method: http.MethodGet,
			path:   records + "/r1/files/report.pdf/metadata",
		},
		{
			name: "GetFileThumbnail",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.GetFileThumbnail(ctx, ws, db, tb, rec, "report.pdf")
			},
			method: http.MethodGet,
			path:   records + "/r1/files/report.pdf/thumb.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, got := newRecordingServer(t, http.StatusOK, `{}`)
			c := newTestClient(t, server.URL)

			_, err := tt.call(context.Background(), c)
			require.NoError(t, err)

			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)

			wantQuery := url.Values{}
			for k, v := range tt.query {
				wantQuery.Set(k, v)
			}
			assert.Equal(t, wantQuery, got.Query)

			if tt.body == "" {
				assert.Empty(t, got.Body)
			} else {
				assert.JSONEq(t, tt.body, got.Body)
			}
		})
	}
}

func TestClient_GetRecords_DefaultChoiceStyle(t *testing.T) {
	server, got := newRecordingServer(t, http.StatusOK, `[{"id":1}]`)
	c := newTestClient(t, server.URL)

	result, err := c.GetRecords(context.Background(), "w1", "d1", "t1")
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{"id": float64(1)}}, result)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/v1/teams/w1/databases/d1/tables/t1/records", got.Path)
	assert.Equal(t, "id", got.Query.Get("choiceStyle"))
}

func TestClient_IdentifiersAreNotEscaped(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `missing`)
	c := newTestClient(t, server.URL)

	_, err := c.GetDatabase(context.Background(), "my team", "db:1")
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, server.URL+"/v1/teams/my team/databases/db:1", apiErr.URL)
}

func TestClient_NilSlicesSendEmptyArrays(t *testing.T) {
	tests := []struct {
		name string
		call func(ctx context.Context, c *Client) (any, error)
		path string
	}{
		{
			name: "DeleteRecords",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.DeleteRecords(ctx, "w1", "d1", "t1", []string(nil))
			},
			path: "/v1/teams/w1/databases/d1/tables/t1/records/delete",
		},
		{
			name: "UpsertRecords",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpsertRecords(ctx, "w1", "d1", "t1", []map[string]any(nil))
			},
			path: "/v1/teams/w1/databases/d1/tables/t1/records",
		},
		{
			name: "untyped nil",
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.DeleteRecords(ctx, "w1", "d1", "t1", nil)
			},
			path: "/v1/teams/w1/databases/d1/tables/t1/records/delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, got := newRecordingServer(t, http.StatusOK, `{}`)
			c := newTestClient(t, server.URL)

			_, err := tt.call(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, http.MethodPost, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, "[]", got.Body)
		})
	}
}

func TestClient_FileNamesWithPercent(t *testing.T) {
	server, got := newRecordingServer(t, http.StatusOK, "content")
	c := newTestClient(t, server.URL)

	data, err := c.GetFile(context.Background(), "w1", "d1", "t1", "r1", "50%off.pdf")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Equal(t, "/v1/teams/w1/databases/d1/tables/t1/records/r1/files/50%off.pdf", got.Path)
}

func TestClient_PropagatesAdapterErrors(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `{"message":"not found"}`)
	c := newTestClient(t, server.URL)

	_, err := c.GetWorkspace(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, `{"message":"not found"}`, apiErr.Body)
}

func TestClient_GetFile_ReturnsRawBytes(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK, `plain text, not json`)
	c := newTestClient(t, server.URL)

	data, err := c.GetFile(context.Background(), "w1", "d1", "t1", "r1", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "plain text, not json", string(data))
}

func TestClient_UploadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/user/some/dir/report.pdf", []byte("%PDF-1.4 body"), 0o644))

	server, got := newRecordingServer(t, http.StatusOK, `{"name":"report.pdf"}`)
	c := newTestClient(t, server.URL, WithFs(fs))

	result, err := c.UploadFile(context.Background(), "w1", "d1", "t1", "r1", "/home/user/some/dir/report.pdf")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "report.pdf"}, result)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/v1/teams/w1/databases/d1/tables/t1/records/r1/files", got.Path)
	assert.True(t, strings.HasPrefix(got.ContentType, "multipart/form-data"))
	assert.Equal(t, "report.pdf", got.Filename)
	assert.Equal(t, "%PDF-1.4 body", got.FileContent)
}

func TestClient_UploadFile_MissingFile(t *testing.T) {
	server, got := newRecordingServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, server.URL, WithFs(afero.NewMemMapFs()))

	_, err := c.UploadFile(context.Background(), "w1", "d1", "t1", "r1", "/does/not/exist.pdf")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.Empty(t, got.Method, "no request should be sent")
}

func TestNewWithAdapter(t *testing.T) {
	server, got := newRecordingServer(t, http.StatusOK, `[]`)
	adapter, err := api.NewAdapter(api.Config{APIKey: "k", BaseURL: server.URL, Version: "v2"})
	require.NoError(t, err)

	c := NewWithAdapter(adapter)
	assert.Same(t, adapter, c.Adapter())

	_, err = c.GetWorkspaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v2/teams", got.Path)
}
