// Package memory is an in-process TableStore for local development and tests.
package memory

import (
	"context"
	"sync"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/infra/tablestore"
)

// Store keeps the table in a mutex-guarded slice.
type Store struct {
	mu   sync.Mutex
	rows []*entity.LogEntry

	// fail, when set, makes every call report the store as unavailable.
	fail error
}

// New returns a store pre-filled with rows.
func New(rows ...*entity.LogEntry) *Store {
	return &Store{rows: tablestore.CloneRows(rows)}
}

// ReadAll returns a copy of the table.
func (s *Store) ReadAll(ctx context.Context) (*entity.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "read"); err != nil {
		return nil, err
	}

	return entity.NewSnapshot(tablestore.CloneRows(s.rows)), nil
}

// ReplaceAll swaps in rows when ifVersion still matches.
func (s *Store) ReplaceAll(ctx context.Context, rows []*entity.LogEntry, ifVersion string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "write"); err != nil {
		return err
	}
	if ifVersion != "" && ifVersion != entity.Fingerprint(s.rows) {
		return repository.ErrVersionMismatch
	}
	s.rows = tablestore.CloneRows(rows)

	return nil
}

// SetUnavailable makes the store fail every call with err until cleared with nil.
func (s *Store) SetUnavailable(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fail = err
}

// Rows returns a copy of the current table.
func (s *Store) Rows() []*entity.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return tablestore.CloneRows(s.rows)
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreError(op, err)
	}
	if s.fail != nil {
		return repository.NewStoreError(op, s.fail)
	}

	return nil
}
