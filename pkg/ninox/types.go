package ninox

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
)

// Workspace is a Ninox team.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Database is a database inside a workspace.
type Database struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field describes one column of a table.
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Schema describes a table and its fields.
type Schema struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Record is a table row. Fields are keyed by field name and left as the
// API returned them.
type Record struct {
	ID         int64          `json:"id"`
	Sequence   int64          `json:"sequence"`
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy"`
	ModifiedAt time.Time      `json:"modifiedAt"`
	ModifiedBy string         `json:"modifiedBy"`
	Fields     map[string]any `json:"fields"`
}

// FileMetadata describes a record attachment.
type FileMetadata struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Decode converts a raw result from one of the Client methods into dst,
// which must be a pointer. Timestamps are accepted in any format dateparse
// understands, or as epoch milliseconds.
func Decode(src any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       timeHook,
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(src); err != nil {
		return fmt.Errorf("failed to decode ninox result: %w", err)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func timeHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		return dateparse.ParseAny(v)
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	}
	return data, nil
}

// ListWorkspaces is GetWorkspaces decoded into Workspace values.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	raw, err := c.GetWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	var out []Workspace
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDatabases is GetDatabases decoded into Database values.
func (c *Client) ListDatabases(ctx context.Context, workspaceID string) ([]Database, error) {
	raw, err := c.GetDatabases(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	var out []Database
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSchemas is GetSchemas decoded into Schema values.
func (c *Client) ListSchemas(ctx context.Context, workspaceID, databaseID string) ([]Schema, error) {
	raw, err := c.GetSchemas(ctx, workspaceID, databaseID)
	if err != nil {
		return nil, err
	}
	var out []Schema
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecords is GetRecords decoded into Record values.
func (c *Client) ListRecords(ctx context.Context, workspaceID, databaseID, tableID string, opts ...RecordOption) ([]Record, error) {
	raw, err := c.GetRecords(ctx, workspaceID, databaseID, tableID, opts...)
	if err != nil {
		return nil, err
	}
	var out []Record
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
