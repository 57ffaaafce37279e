package ninox

import (
	"context"
	"reflect"

	"github.com/ninoxdb/ninox-go/pkg/ninox/api"
)

// ChoiceStyle controls how choice field values are rendered.
type ChoiceStyle string

// DateStyle controls how date field values are rendered.
type DateStyle string

const (
	ChoiceStyleID    ChoiceStyle = "id"
	ChoiceStyleNames ChoiceStyle = "names"

	DateStyleID  DateStyle = "id"
	DateStyleISO DateStyle = "iso"
)

type recordOptions struct {
	choiceStyle ChoiceStyle
	dateStyle   DateStyle
}

// RecordOption adjusts the rendering of record reads.
type RecordOption func(*recordOptions)

// WithChoiceStyle overrides the default choiceStyle=id.
func WithChoiceStyle(style ChoiceStyle) RecordOption {
	return func(o *recordOptions) { o.choiceStyle = style }
}

// WithDateStyle overrides the default dateStyle=id. Only SearchRecords
// sends it.
func WithDateStyle(style DateStyle) RecordOption {
	return func(o *recordOptions) { o.dateStyle = style }
}

func collectRecordOptions(opts []RecordOption) recordOptions {
	o := recordOptions{choiceStyle: ChoiceStyleID, dateStyle: DateStyleID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GetRecords lists the records of a table.
func (c *Client) GetRecords(ctx context.Context, workspaceID, databaseID, tableID string, opts ...RecordOption) (any, error) {
	o := collectRecordOptions(opts)
	return c.adapter.Get(ctx, path(tablePath(workspaceID, databaseID, tableID), "records"),
		map[string]string{"choiceStyle": string(o.choiceStyle)})
}

// GetRecord returns a single record.
func (c *Client) GetRecord(ctx context.Context, workspaceID, databaseID, tableID, recordID string, opts ...RecordOption) (any, error) {
	o := collectRecordOptions(opts)
	return c.adapter.Get(ctx, recordPath(workspaceID, databaseID, tableID, recordID),
		map[string]string{"choiceStyle": string(o.choiceStyle)})
}

// UpdateRecord replaces the given fields of a record.
func (c *Client) UpdateRecord(ctx context.Context, workspaceID, databaseID, tableID, recordID string, data any) (any, error) {
	return c.adapter.Put(ctx, recordPath(workspaceID, databaseID, tableID, recordID), data)
}

// SearchRecords finds records matching query, which is either a filter
// object or a Ninox script string.
func (c *Client) SearchRecords(ctx context.Context, workspaceID, databaseID, tableID string, query any, opts ...RecordOption) (any, error) {
	o := collectRecordOptions(opts)
	return c.adapter.Do(ctx, api.Request{
		Method:   api.MethodPost,
		Endpoint: path(tablePath(workspaceID, databaseID, tableID), "records"),
		Body:     query,
		Query: map[string]string{
			"choiceStyle": string(o.choiceStyle),
			"dateStyle":   string(o.dateStyle),
		},
	})
}

// UpsertRecords creates records without an id and updates the others. A
// nil slice is sent as an empty array.
func (c *Client) UpsertRecords(ctx context.Context, workspaceID, databaseID, tableID string, records any) (any, error) {
	return c.adapter.Post(ctx, path(tablePath(workspaceID, databaseID, tableID), "records"), jsonArray(records), nil)
}

// DeleteRecord deletes a single record.
func (c *Client) DeleteRecord(ctx context.Context, workspaceID, databaseID, tableID, recordID string) (any, error) {
	return c.adapter.Delete(ctx, recordPath(workspaceID, databaseID, tableID, recordID))
}

// DeleteRecords deletes the records with the given ids in one call. A nil
// slice is sent as an empty array.
func (c *Client) DeleteRecords(ctx context.Context, workspaceID, databaseID, tableID string, recordIDs any) (any, error) {
	return c.adapter.Post(ctx, path(tablePath(workspaceID, databaseID, tableID), "records", "delete"), jsonArray(recordIDs), nil)
}

// jsonArray turns a nil slice, typed or not, into an empty one so it
// encodes as [] rather than null.
func jsonArray(v any) any {
	if v == nil {
		return []any{}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.IsNil() {
		return []any{}
	}
	return v
}
