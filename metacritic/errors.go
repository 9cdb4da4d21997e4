package metacritic

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// HTTPStatusError is returned when the site answers with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ParseError is returned when a fetched page cannot be read as HTML.
type ParseError struct {
	Page string // "search" or "detail"
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s page: %v", e.Page, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorClass groups lookup failures for logging and metrics.
type ErrorClass int

const (
	// ErrorClassTransport covers connection, DNS, TLS and timeout failures.
	ErrorClassTransport ErrorClass = iota
	// ErrorClassStatus means the site responded with a non-2xx status.
	ErrorClassStatus
	// ErrorClassParse means a page was fetched but could not be parsed.
	ErrorClassParse
	// ErrorClassUnknown is anything else.
	ErrorClassUnknown
)

// String returns a human-readable name for the error class.
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorClassTransport:
		return "transport"
	case ErrorClassStatus:
		return "status"
	case ErrorClassParse:
		return "parse"
	default:
		return "unknown"
	}
}

// ClassifyError maps a lookup error to its ErrorClass. A nil error is ErrorClassUnknown.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassUnknown
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return ErrorClassStatus
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return ErrorClassParse
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorClassTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorClassTransport
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrorClassTransport
	}
	return ErrorClassUnknown
}
