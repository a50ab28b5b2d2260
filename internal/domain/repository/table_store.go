// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/errors"
)

var (
	// ErrStoreUnavailable matches every transport failure reported by a TableStore.
	ErrStoreUnavailable = errors.New("table store unavailable")
	// ErrVersionMismatch is returned by a conditional ReplaceAll when the table
	// no longer matches the version the caller read.
	ErrVersionMismatch = errors.New("table changed since it was read")
)

// TableStore is the external full-read/full-replace table. It has no row-level
// API: every write replaces the entire table.
type TableStore interface {
	// ReadAll returns every row in stored order plus its version fingerprint.
	ReadAll(ctx context.Context) (*entity.Snapshot, error)

	// ReplaceAll overwrites the whole table with rows. When ifVersion is not
	// empty the write only happens if the stored table still fingerprints to it.
	ReplaceAll(ctx context.Context, rows []*entity.LogEntry, ifVersion string) error
}

// StoreError carries a transport failure from a TableStore.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a StoreError with a stack trace.
func NewStoreError(op string, err error) error {
	return errors.WithStack(&StoreError{Op: op, Err: err})
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return "table store " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is makes every StoreError match ErrStoreUnavailable.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
