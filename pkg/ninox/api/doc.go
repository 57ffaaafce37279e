// Package api is the HTTP layer of the Ninox client.
//
// # Overview
//
// An Adapter owns the base URL, API version, bearer key and TLS setting of
// one Ninox account. Every call performs exactly one HTTP request against
//
//	{base_url}/{version}/{endpoint}
//
// and either returns the decoded JSON body or an *Error. There are no
// retries, no caching and no pagination; callers that need those build
// them on top.
//
// # Errors
//
// All failures are reported as *Error with one of three kinds:
//
//   - KindTransport: no response was obtained (DNS, refused connection,
//     TLS, timeout, or the request could not be built)
//   - KindHTTPStatus: the status was outside 200-299; StatusCode and the
//     raw Body are kept
//   - KindDecode: a 2xx body was not JSON; the raw Body is kept
//
// Use errors.As, or the IsTransport, IsDecode, StatusCode and IsNotFound
// helpers.
//
// # Logging
//
// The Adapter logs through an injected hclog.Logger (WithLogger). Each call
// emits a debug line with method, URL, body and query before sending, and
// an error line on every failure path. Headers, and so the API key, are
// never logged.
//
// # Security
//
//   - Bearer token authentication
//   - TLS with certificate verification unless SkipTLSValidation is set
//   - APIKey is not serialized to JSON
package api
