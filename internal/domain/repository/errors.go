package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every update-by-id failure on a missing record.
// Lookups never return it; they return a nil record instead.
var ErrNotFound = errors.New("record not found")

var (
	ErrPatientNotFound = fmt.Errorf("patient: %w", ErrNotFound)
)

// DataInitializationError reports a seed document that could not be fetched
// or parsed. Seeding is not retried automatically.
type DataInitializationError struct {
	Resource string
	Err      error
}

func (e *DataInitializationError) Error() string {
	return fmt.Sprintf("failed to initialize %s seed data: %v", e.Resource, e.Err)
}

func (e *DataInitializationError) Unwrap() error {
	return e.Err
}

// StorageCorruptionError reports a stored document that no longer decodes
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("stored value for %q is corrupt: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error {
	return e.Err
}
