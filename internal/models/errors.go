package models

import "errors"

// Sentinel errors returned by the integration clients so callers can tell
// "service failed" apart from "no data found" before choosing a fallback.
var (
	// ErrUnavailable means the external service could not be reached or
	// returned a failure; the data may well exist.
	ErrUnavailable = errors.New("external service unavailable")

	// ErrNotFound means the service answered but the requested record
	// does not exist.
	ErrNotFound = errors.New("record not found")
)
