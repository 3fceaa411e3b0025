package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrMissingCredential marks a configuration failure: a required key
	// for the document source or a provider is absent. Fatal at the
	// document-source boundary, a plain "no result" inside providers.
	ErrMissingCredential = errors.New("missing credential")

	// ErrNoResult marks a provider attempt that found nothing usable.
	ErrNoResult = errors.New("no result")

	// ErrCacheIO marks a persisted-cache read or write failure.
	ErrCacheIO = errors.New("cache i/o failure")

	ErrInvalidConfig = errors.New("invalid configuration")
)
