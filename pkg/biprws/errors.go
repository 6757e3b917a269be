package biprws

import "fmt"

// AuthError is returned when the server rejects the credential or the
// session token (HTTP 401/403).
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication rejected (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("authentication rejected (status %d): %s", e.StatusCode, e.Message)
}

// NotFoundError is returned for unknown document, data-provider and
// folder ids (HTTP 404).
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// TransportError wraps connection-level failures: unreachable host,
// timeout, cancelled context.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError wraps a response body that could not be decoded, or one
// decoded successfully but missing a field the caller depends on.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError covers the remaining error statuses the server can produce.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}
