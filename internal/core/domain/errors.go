package domain

import "errors"

// Stage errors. Each pipeline stage wraps its failures with exactly one
// of these sentinels so the orchestrator can classify outcomes with
// errors.Is without knowing the adapter behind the port.
var (
	// ErrNetwork covers fetch failures: timeouts, connection errors,
	// non-2xx responses.
	ErrNetwork = errors.New("network failure")

	// ErrNoStructuredData means the page fetched fine but carried no
	// ld+json blocks at all.
	ErrNoStructuredData = errors.New("no structured data on page")

	// ErrExtraction means structured data was present but no usable
	// listing object could be recovered from it.
	ErrExtraction = errors.New("listing extraction failed")

	// ErrGeocodeMiss covers both "no match" responses and geocoding
	// service failures; the pipeline proceeds without coordinates.
	ErrGeocodeMiss = errors.New("geocoding miss")

	// ErrPersist covers any database failure inside the write
	// transaction.
	ErrPersist = errors.New("persistence failure")
)
