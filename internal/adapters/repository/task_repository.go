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

const taskColumns = `id, title, description, due_date, estimate_min, importance, is_done, created_at, updated_at`

// Open tasks first, then earliest deadline with undated tasks last, then
// most important.
const taskOrder = `
		ORDER BY is_done ASC,
			CASE WHEN due_date IS NULL THEN 1 ELSE 0 END ASC,
			due_date ASC,
			importance DESC,
			created_at ASC`

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (:id, :title, :description, :due_date, :estimate_min, :importance, :is_done, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return storageErr("create task", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, storageErr("get task by id", err)
	}

	return utcTask(&task), nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = :title, description = :description, due_date = :due_date,
			estimate_min = :estimate_min, importance = :importance, is_done = :is_done,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		return storageErr("update task", err)
	}

	return expectOneRow(result, "update task")
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return storageErr("delete task", err)
	}

	return expectOneRow(result, "delete task")
}

func (r *TaskRepositoryImpl) MarkDone(ctx context.Context, id string, at time.Time) error {
	query := r.db.Rebind(`UPDATE tasks SET is_done = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, true, at.UTC(), id)
	if err != nil {
		return storageErr("mark task done", err)
	}

	return expectOneRow(result, "mark task done")
}

func (r *TaskRepositoryImpl) UpdateDueDate(ctx context.Context, id string, due time.Time, at time.Time) error {
	query := r.db.Rebind(`UPDATE tasks SET due_date = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, due.UTC(), at.UTC(), id)
	if err != nil {
		return storageErr("update task due date", err)
	}

	return expectOneRow(result, "update task due date")
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []interface{}

	if filter.IsDone != nil {
		query += ` WHERE is_done = ?`
		args = append(args, *filter.IsDone)
	}
	query += taskOrder
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var tasks []*entities.Task
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, storageErr("list tasks", err)
	}

	for _, t := range tasks {
		utcTask(t)
	}
	return tasks, nil
}

func expectOneRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// utcTask normalizes driver-specific zones so callers always see UTC
func utcTask(t *entities.Task) *entities.Task {
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}
