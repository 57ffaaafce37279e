// Package ninox is a client for the Ninox cloud database REST API.
//
// # Overview
//
// Client maps each Ninox endpoint (workspaces, databases, tables, records,
// files and change feeds) to one method. Methods build the endpoint path
// from the identifiers they are given, in the order
// workspace → database → table → record → files, and delegate to an
// api.Adapter which performs the request. Results are the decoded JSON
// value, returned verbatim; errors are *api.Error values, also returned
// verbatim.
//
// # Usage
//
//	client, err := ninox.New(api.Config{APIKey: os.Getenv("NINOX_API_KEY")},
//		ninox.WithLogger(hclog.Default()))
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	records, err := client.GetRecords(ctx, "w1", "d1", "A",
//		ninox.WithChoiceStyle(ninox.ChoiceStyleNames))
//	if code, ok := api.StatusCode(err); ok {
//		log.Printf("ninox answered %d", code)
//	}
//
// # Typed views
//
// Raw results can be converted with Decode, or fetched typed through
// ListWorkspaces, ListDatabases, ListSchemas and ListRecords.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching
//   - No retries
//   - No pagination beyond what the API returns
//   - No validation of record payloads
package ninox
