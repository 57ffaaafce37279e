package ninox

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

// UploadFile attaches the local file at filePath to a record. The file is
// sent under its base name and closed before UploadFile returns.
func (c *Client) UploadFile(ctx context.Context, workspaceID, databaseID, tableID, recordID, filePath string) (any, error) {
	endpoint := filesPath(workspaceID, databaseID, tableID, recordID)

	f, err := c.fs.Open(filePath)
	if err != nil {
		c.adapter.Logger().Error("failed to open upload", "path", filePath, "error", err)
		return nil, &api.Error{
			Kind:   api.KindTransport,
			Method: api.MethodPost,
			URL:    c.adapter.URL(endpoint),
			Err:    fmt.Errorf("failed to open %q: %w", filePath, err),
		}
	}
	defer f.Close()

	return c.adapter.Post(ctx, endpoint, nil, &api.FilePayload{
		Name:   filepath.Base(filePath),
		Reader: f,
	})
}

// GetFile downloads the contents of a record attachment.
func (c *Client) GetFile(ctx context.Context, workspaceID, databaseID, tableID, recordID, name string) ([]byte, error) {
	return c.adapter.DoRaw(ctx, api.Request{
		Method:   api.MethodGet,
		Endpoint: path(filesPath(workspaceID, databaseID, tableID, recordID), name),
	})
}

// DeleteFile removes a record attachment.
func (c *Client) DeleteFile(ctx context.Context, workspaceID, databaseID, tableID, recordID, name string) (any, error) {
	return c.adapter.Delete(ctx, path(filesPath(workspaceID, databaseID, tableID, recordID), name))
}

// GetFilesMetadata lists the attachments of a record.
func (c *Client) GetFilesMetadata(ctx context.Context, workspaceID, databaseID, tableID, recordID string) (any, error) {
	return c.adapter.Get(ctx, filesPath(workspaceID, databaseID, tableID, recordID), nil)
}

// GetFileMetadata describes a single attachment.
func (c *Client) GetFileMetadata(ctx context.Context, workspaceID, databaseID, tableID, recordID, name string) (any, error) {
	return c.adapter.Get(ctx, path(filesPath(workspaceID, databaseID, tableID, recordID), name, "metadata"), nil)
}

// GetFileThumbnail downloads the JPEG thumbnail of an attachment.
func (c *Client) GetFileThumbnail(ctx context.Context, workspaceID, databaseID, tableID, recordID, name string) ([]byte, error) {
	return c.adapter.DoRaw(ctx, api.Request{
		Method:   api.MethodGet,
		Endpoint: path(filesPath(workspaceID, databaseID, tableID, recordID), name, "thumb.jpg"),
	})
}
