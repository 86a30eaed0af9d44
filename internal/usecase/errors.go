package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrFetchFailed marks a single source that could not be reached
	// or decoded. The aggregator swallows it per source and only
	// escalates when nothing at all was collected.
	ErrFetchFailed = errors.New("source fetch failed")

	// ErrNoDataAvailable means every applicable source for the
	// requested scope failed.
	ErrNoDataAvailable = errors.New("no data available")
)
