package ninox

import (
	"context"
)

// GetWorkspaces lists the workspaces (teams) the key can access.
func (c *Client) GetWorkspaces(ctx context.Context) (any, error) {
	return c.adapter.Get(ctx, "teams", nil)
}

// GetWorkspace returns a single workspace.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (any, error) {
	return c.adapter.Get(ctx, workspacePath(workspaceID), nil)
}

// GetDatabases lists the databases of a workspace.
func (c *Client) GetDatabases(ctx context.Context, workspaceID string) (any, error) {
	return c.adapter.Get(ctx, path(workspacePath(workspaceID), "databases"), nil)
}

// GetDatabase returns a database including its schema.
func (c *Client) GetDatabase(ctx context.Context, workspaceID, databaseID string) (any, error) {
	return c.adapter.Get(ctx, databasePath(workspaceID, databaseID), nil)
}

// Query evaluates a read-only Ninox script expression.
func (c *Client) Query(ctx context.Context, workspaceID, databaseID, query string) (any, error) {
	return c.adapter.Post(ctx, path(databasePath(workspaceID, databaseID), "query"),
		map[string]string{"query": query}, nil)
}

// Exec evaluates a Ninox script expression that may modify data.
func (c *Client) Exec(ctx context.Context, workspaceID, databaseID, query string) (any, error) {
	return c.adapter.Post(ctx, path(databasePath(workspaceID, databaseID), "exec"),
		map[string]string{"query": query}, nil)
}

// GetSchemas lists the tables of a database.
func (c *Client) GetSchemas(ctx context.Context, workspaceID, databaseID string) (any, error) {
	return c.adapter.Get(ctx, path(databasePath(workspaceID, databaseID), "tables"), nil)
}

// GetSchema returns the field definitions of one table.
func (c *Client) GetSchema(ctx context.Context, workspaceID, databaseID, tableID string) (any, error) {
	return c.adapter.Get(ctx, tablePath(workspaceID, databaseID, tableID), nil)
}
