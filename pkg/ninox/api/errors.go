package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a request failed.
type ErrorKind int

const (
	// KindTransport means no HTTP response was obtained: DNS, connection,
	// TLS or timeout failures, and failures building the request itself.
	KindTransport ErrorKind = iota + 1

	// KindHTTPStatus means the server answered outside 200-299.
	KindHTTPStatus

	// KindDecode means a 2xx body could not be parsed as JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the Adapter.
type Error struct {
	Kind       ErrorKind
	Method     Method
	URL        string
	StatusCode int    // Set for KindHTTPStatus
	Body       string // Raw response text for KindHTTPStatus and KindDecode
	Err        error  // Underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("ninox: %s %s failed with status code %d: %s",
			e.Method, e.URL, e.StatusCode, e.Body)
	case KindDecode:
		return fmt.Sprintf("ninox: %s %s: failed to decode response: %s",
			e.Method, e.URL, e.Body)
	default:
		return fmt.Sprintf("ninox: %s %s: request failed: %v", e.Method, e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is an Adapter error raised before any
// HTTP response was received.
func IsTransport(err error) bool {
	return kindOf(err) == KindTransport
}

// IsDecode reports whether err is an Adapter error caused by a non-JSON
// success body.
func IsDecode(err error) bool {
	return kindOf(err) == KindDecode
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindHTTPStatus {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

func kindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
