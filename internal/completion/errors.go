package completion

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network I/O when no
	// API key is configured for the request.
	ErrMissingCredential = errors.New("no API key configured")

	// ErrMalformedResponse is returned when the response body is not the
	// expected chat-completion envelope or the first choice has no
	// message content.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// TransportError wraps a connection failure or timeout.
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport error: %s", e.Detail)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a non-2xx response from the provider.
type ProtocolError struct {
	Status int
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("completion API error: status %d", e.Status)
	}
	return fmt.Sprintf("completion API error: status %d: %s", e.Status, e.Detail)
}
