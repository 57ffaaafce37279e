package ninox

import (
	"context"
)

// GetDatabaseChanges returns the changes to a database after the given
// sequence number.
func (c *Client) GetDatabaseChanges(ctx context.Context, workspaceID, databaseID, sinceSeq string) (any, error) {
	return c.changes(ctx, databasePath(workspaceID, databaseID), sinceSeq)
}

// GetTableChanges returns the changes to a table after the given sequence
// number.
func (c *Client) GetTableChanges(ctx context.Context, workspaceID, databaseID, tableID, sinceSeq string) (any, error) {
	return c.changes(ctx, tablePath(workspaceID, databaseID, tableID), sinceSeq)
}

// GetRecordChanges returns the changes to a record after the given
// sequence number.
func (c *Client) GetRecordChanges(ctx context.Context, workspaceID, databaseID, tableID, recordID, sinceSeq string) (any, error) {
	return c.changes(ctx, recordPath(workspaceID, databaseID, tableID, recordID), sinceSeq)
}

func (c *Client) changes(ctx context.Context, base, sinceSeq string) (any, error) {
	return c.adapter.Get(ctx, path(base, "changes"), map[string]string{"sinceSq": sinceSeq})
}
