// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// logEntryRepository implements the repository.LogEntryRepository interface.
type logEntryRepository struct {
	db *gorm.DB
}

// NewLogEntryRepository is the constructor for logEntryRepository.
func NewLogEntryRepository(db *gorm.DB) repository.LogEntryRepository {
	return &logEntryRepository{
		db: db,
	}
}

// LockTable takes an exclusive lock on log_entries for the rest of the transaction.
func (repo *logEntryRepository) LockTable(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Exec("LOCK TABLE " + model.LogEntryModel{}.TableName() + " IN EXCLUSIVE MODE").Error; err != nil {
		return errors.Wrap(err, "failed to lock log_entries")
	}

	return nil
}

// FindAll retrieves every row in position order.
func (repo *logEntryRepository) FindAll(ctx context.Context) ([]*entity.LogEntry, error) {
	var models []model.LogEntryModel

	if err := repo.db.WithContext(ctx).
		Order("position ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query log_entries")
	}

	rows := make([]*entity.LogEntry, len(models))
	for i := range models {
		rows[i] = toLogEntryDomain(&models[i])
	}

	return rows, nil
}

// ReplaceAll deletes every row and inserts rows at positions 0..n-1.
func (repo *logEntryRepository) ReplaceAll(ctx context.Context, rows []*entity.LogEntry) error {
	db := repo.db.WithContext(ctx)

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.LogEntryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear log_entries")
	}

	if len(rows) == 0 {
		return nil
	}

	models := make([]*model.LogEntryModel, len(rows))
	for i, row := range rows {
		models[i] = fromLogEntryDomain(row, i)
	}

	if err := db.CreateInBatches(models, insertBatchSize).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "duplicate entry id")
		}

		return errors.Wrap(err, "failed to insert log_entries")
	}

	return nil
}

func fromLogEntryDomain(row *entity.LogEntry, position int) *model.LogEntryModel {
	id := row.ID
	if id == "" {
		id = uuid.NewString()
	}

	var dateLogged *time.Time
	if !row.DateLogged.IsZero() {
		d := row.DateLogged
		dateLogged = &d
	}

	return &model.LogEntryModel{
		Position:   position,
		EntryID:    id,
		OwnerEmail: row.OwnerEmail,
		Title:      row.Title,
		Creator:    row.Creator,
		Category:   string(row.Category),
		Genre:      row.Genre,
		Year:       row.Year,
		DateLogged: dateLogged,
		Verdict:    string(row.Verdict),
		Thoughts:   row.Thoughts,
	}
}

func toLogEntryDomain(m *model.LogEntryModel) *entity.LogEntry {
	var dateLogged time.Time
	if m.DateLogged != nil {
		d := m.DateLogged.UTC()
		dateLogged = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}

	return &entity.LogEntry{
		ID:         m.EntryID,
		OwnerEmail: m.OwnerEmail,
		Title:      m.Title,
		Creator:    m.Creator,
		Category:   entity.Category(m.Category),
		Genre:      m.Genre,
		Year:       m.Year,
		DateLogged: dateLogged,
		Verdict:    entity.Verdict(m.Verdict),
		Thoughts:   m.Thoughts,
	}
}
