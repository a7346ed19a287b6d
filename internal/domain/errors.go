package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog file is missing or unreadable
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrExtractionFailed is returned when the external intent extractor errors
	// or returns output that cannot be parsed as a JSON object
	ErrExtractionFailed = errors.New("intent extraction failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSessionNotFound is returned when a session id has no stored state
	ErrSessionNotFound = errors.New("session not found")
)
