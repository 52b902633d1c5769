package errors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrHoldingNotFound indicates that a holding with the given symbol does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrSettingNotFound indicates that a system setting with the given key does not exist.
	ErrSettingNotFound = errors.New("setting not found")
)

// Provider errors represent failures at the external data boundary.
// Both are recovered locally: a refresh skips the affected symbol and
// an add aborts only that single add. They never abort a whole batch.
var (
	// ErrDataUnavailable indicates that a provider responded but returned
	// no usable observations for the symbol in any lookback window.
	ErrDataUnavailable = errors.New("no data available for symbol")

	// ErrFetchFailed indicates a transport or parsing failure while
	// talking to an external provider.
	ErrFetchFailed = errors.New("provider fetch failed")

	// ErrMissingAPIKey indicates that a provider call requires an API key
	// that has not been configured.
	ErrMissingAPIKey = errors.New("provider API key not configured")
)

// Business logic errors represent constraint violations.
var (
	// ErrRefreshInProgress indicates that a batch refresh is already running.
	// Overlapping batches are rejected rather than queued.
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrEmptyHistory indicates that normalization was requested on an
	// empty history series. Callers must check emptiness first.
	ErrEmptyHistory = errors.New("history series is empty")
)
