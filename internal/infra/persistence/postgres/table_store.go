package postgres

import (
	"context"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/errors"
)

// tableStore implements repository.TableStore on top of the log_entries table.
// Unlike the spreadsheet drivers, the version check and the write happen
// under one table lock.
type tableStore struct {
	txManager repository.TransactionManager
}

// NewTableStore is the constructor for tableStore.
func NewTableStore(txManager repository.TransactionManager) repository.TableStore {
	return &tableStore{txManager: txManager}
}

// ReadAll reads every row in position order.
func (s *tableStore) ReadAll(ctx context.Context) (*entity.Snapshot, error) {
	var rows []*entity.LogEntry

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.LogEntryRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		rows = found

		return nil
	})
	if err != nil {
		return nil, repository.NewStoreError("postgres read", err)
	}

	return entity.NewSnapshot(rows), nil
}

// ReplaceAll rewrites the table when it still fingerprints to ifVersion.
func (s *tableStore) ReplaceAll(ctx context.Context, rows []*entity.LogEntry, ifVersion string) error {
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.LogEntryRepo()

		if err := logRepo.LockTable(ctx); err != nil {
			return err
		}

		if ifVersion != "" {
			current, err := logRepo.FindAll(ctx)
			if err != nil {
				return err
			}
			if entity.Fingerprint(current) != ifVersion {
				return repository.ErrVersionMismatch
			}
		}

		return logRepo.ReplaceAll(ctx, rows)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrVersionMismatch):
		return repository.ErrVersionMismatch
	default:
		return repository.NewStoreError("postgres write", err)
	}
}
