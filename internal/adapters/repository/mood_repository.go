package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/ports"
)

const moodColumns = `id, recorded_at, mood, note`

// MoodRepositoryImpl implements the MoodRepository interface
type MoodRepositoryImpl struct {
	db *sqlx.DB
}

// NewMoodRepository creates a new mood log repository
func NewMoodRepository(db *sqlx.DB) ports.MoodRepository {
	return &MoodRepositoryImpl{db: db}
}

func (r *MoodRepositoryImpl) Create(ctx context.Context, entry *entities.MoodLogEntry) error {
	query := `INSERT INTO mood_logs (` + moodColumns + `) VALUES (:id, :recorded_at, :mood, :note)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return storageErr("create mood entry", err)
	}

	return nil
}

func (r *MoodRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]entities.MoodLogEntry, error) {
	query := r.db.Rebind(`SELECT ` + moodColumns + ` FROM mood_logs ORDER BY recorded_at DESC LIMIT ?`)

	var entries []entities.MoodLogEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, storageErr("list mood entries", err)
	}

	for i := range entries {
		entries[i].At = entries[i].At.UTC()
	}
	return entries, nil
}

func (r *MoodRepositoryImpl) LatestSince(ctx context.Context, since time.Time) (*entities.MoodLogEntry, error) {
	query := r.db.Rebind(`
		SELECT ` + moodColumns + `
		FROM mood_logs
		WHERE recorded_at >= ?
		ORDER BY recorded_at DESC
		LIMIT 1`)

	var entry entities.MoodLogEntry
	err := r.db.GetContext(ctx, &entry, query, since.UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrRecordNotFound
		}
		return nil, storageErr("get latest mood entry", err)
	}

	entry.At = entry.At.UTC()
	return &entry, nil
}
