package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/studywell/dashboard/internal/ports"
)

// Repositories groups the journal repositories of one storage backend
type Repositories struct {
	Tasks  ports.TaskRepository
	Health ports.HealthRepository
	Moods  ports.MoodRepository
}

// NewSQLRepositories returns repositories over a postgres or sqlite3 connection
func NewSQLRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Tasks:  NewTaskRepository(db),
		Health: NewHealthRepository(db),
		Moods:  NewMoodRepository(db),
	}
}

// NewMemoryRepositories returns repositories sharing one in-process store
func NewMemoryRepositories() Repositories {
	s := NewMemoryStore()
	return Repositories{
		Tasks:  NewMemoryTaskRepository(s),
		Health: NewMemoryHealthRepository(s),
		Moods:  NewMemoryMoodRepository(s),
	}
}
