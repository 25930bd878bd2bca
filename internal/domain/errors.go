package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUnknownMetric indicates the metric ID is not in the catalog
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrEmptyValue indicates a reading was submitted without a value
	ErrEmptyValue = errors.New("value is required")

	// ErrInvalidValue indicates a reading could not be parsed as a number
	ErrInvalidValue = errors.New("value must be a number")

	// ErrNothingToLog indicates a batch log had no filled-in values
	ErrNothingToLog = errors.New("no metrics to log")

	// ErrNotFound indicates a stored record does not exist
	ErrNotFound = errors.New("not found")
)
