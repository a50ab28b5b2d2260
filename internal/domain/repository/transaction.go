package repository

import (
	"context"

	"didilikeit/internal/domain/entity"
)

// TransactionManager defines the interface for managing database transactions.
// This allows callers to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific transaction.
type RepositoryFactory interface {
	// LogEntryRepo returns a LogEntryRepository bound to the current transaction.
	LogEntryRepo() LogEntryRepository
}

// LogEntryRepository is the row-level view of a SQL-backed table. It is only
// used to implement TableStore; use cases never see it.
type LogEntryRepository interface {
	// LockTable blocks concurrent writers until the transaction ends.
	LockTable(ctx context.Context) error

	// FindAll returns every row in position order.
	FindAll(ctx context.Context) ([]*entity.LogEntry, error)

	// ReplaceAll deletes every row and inserts rows at positions 0..n-1.
	ReplaceAll(ctx context.Context, rows []*entity.LogEntry) error
}
