package provider

import (
	"errors"
	"fmt"
)

// Common provider errors that can be checked with errors.Is.
var (
	// ErrNoAudio is returned when a lookup succeeded but carried no playable
	// URL. This commonly signals a licensing restriction rather than a
	// transient failure, so it maps to 404 instead of a gateway error.
	ErrNoAudio = errors.New("provider: no playable url")

	// ErrUpstream is returned when talking to a resolution provider fails
	// (network error, timeout, or non-2xx response).
	ErrUpstream = errors.New("provider: upstream failure")

	// ErrRejected is returned when the provider answered but refused the
	// lookup, usually because the identifier does not exist.
	ErrRejected = errors.New("provider: lookup rejected")
)

// UpstreamError wraps an error with the provider and operation that caused
// it, so the HTTP boundary can surface the upstream's message while callers
// keep checking the underlying kind with errors.Is.
type UpstreamError struct {
	// Provider is the name of the upstream service (e.g. "paugram", "qq").
	Provider string

	// Operation is what was being looked up (e.g. "song url", "playlist").
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Operation, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError wrapping ErrUpstream.
func NewUpstreamError(provider, operation string, cause error) error {
	return &UpstreamError{
		Provider:  provider,
		Operation: operation,
		Err:       fmt.Errorf("%w: %v", ErrUpstream, cause),
	}
}

// NewRejectedError creates an UpstreamError wrapping ErrRejected.
func NewRejectedError(provider, operation string, cause error) error {
	return &UpstreamError{
		Provider:  provider,
		Operation: operation,
		Err:       fmt.Errorf("%w: %v", ErrRejected, cause),
	}
}

// NewNoAudioError creates an UpstreamError wrapping ErrNoAudio.
func NewNoAudioError(provider, operation string) error {
	return &UpstreamError{
		Provider:  provider,
		Operation: operation,
		Err:       ErrNoAudio,
	}
}
