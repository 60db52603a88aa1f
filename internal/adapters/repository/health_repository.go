package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/database"
	"github.com/studywell/dashboard/internal/ports"
)

const healthColumns = `id, date_key, condition, note, created_at, updated_at`

// HealthRepositoryImpl implements the HealthRepository interface
type HealthRepositoryImpl struct {
	db *sqlx.DB
}

// NewHealthRepository creates a new daily health repository
func NewHealthRepository(db *sqlx.DB) ports.HealthRepository {
	return &HealthRepositoryImpl{db: db}
}

func (r *HealthRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*entities.DailyHealthRecord, error) {
	query := r.db.Rebind(`SELECT ` + healthColumns + ` FROM daily_health_records WHERE date_key = ?`)

	var record entities.DailyHealthRecord
	err := r.db.GetContext(ctx, &record, query, date.UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrRecordNotFound
		}
		return nil, storageErr("get health record by date", err)
	}

	return utcHealth(&record), nil
}

// Upsert looks the day up and then updates or inserts inside one
// transaction. On success record carries the stored id and timestamps.
func (r *HealthRepositoryImpl) Upsert(ctx context.Context, record *entities.DailyHealthRecord) error {
	return database.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var existing entities.DailyHealthRecord
		err := tx.GetContext(ctx, &existing,
			tx.Rebind(`SELECT `+healthColumns+` FROM daily_health_records WHERE date_key = ?`),
			record.Date.UTC())

		switch {
		case err == nil:
			record.ID = existing.ID
			record.CreatedAt = existing.CreatedAt.UTC()
			_, err = tx.ExecContext(ctx,
				tx.Rebind(`UPDATE daily_health_records SET condition = ?, note = ?, updated_at = ? WHERE id = ?`),
				record.Condition, record.Note, record.UpdatedAt.UTC(), record.ID)
			if err != nil {
				return storageErr("update health record", err)
			}
			return nil

		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.NamedExecContext(ctx, `
				INSERT INTO daily_health_records (`+healthColumns+`)
				VALUES (:id, :date_key, :condition, :note, :created_at, :updated_at)`, record)
			if err != nil {
				if isUniqueViolation(err) {
					return entities.ErrDuplicateDay
				}
				return storageErr("insert health record", err)
			}
			return nil

		default:
			return storageErr("lookup health record", err)
		}
	})
}

func (r *HealthRepositoryImpl) ListSince(ctx context.Context, from time.Time) ([]entities.DailyHealthRecord, error) {
	query := r.db.Rebind(`
		SELECT ` + healthColumns + `
		FROM daily_health_records
		WHERE date_key >= ?
		ORDER BY date_key DESC`)

	var records []entities.DailyHealthRecord
	if err := r.db.SelectContext(ctx, &records, query, from.UTC()); err != nil {
		return nil, storageErr("list health records", err)
	}

	for i := range records {
		utcHealth(&records[i])
	}
	return records, nil
}

func utcHealth(r *entities.DailyHealthRecord) *entities.DailyHealthRecord {
	r.Date = r.Date.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r
}
