package request

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidProxy indicates a proxy URL that cannot be used
	ErrInvalidProxy = errors.New("invalid proxy URL")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid client configuration")
	// ErrUnsupportedEndpoint indicates an endpoint the dialect does not serve
	ErrUnsupportedEndpoint = errors.New("endpoint not supported by this API")
)

// ConstructionError is returned before any network activity, when a client,
// header or URL cannot be built from the values it was given.
type ConstructionError struct {
	Field string
	Value string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("construction error: %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("construction error: %s: %v", e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed network call or a non-2xx response.
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *TransportError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *TransportError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError reports a response body that could not be turned into the
// requested records. Path locates the sub-tree ("data[2]", "@attributes"),
// Field names the offending field when it is known.
type DecodeError struct {
	Path  string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	loc := e.Path
	if e.Field != "" {
		if loc != "" {
			loc += "."
		}
		loc += e.Field
	}
	if loc == "" {
		return fmt.Sprintf("decode error: %v", e.Err)
	}
	return fmt.Sprintf("decode error at %s: %v", loc, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned by RequireFields when a required field is
// absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
