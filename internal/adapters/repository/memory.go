package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/ports"
)

// MemoryStore is a mutex-guarded in-process backend used when
// database.driver is "memory". Health records are keyed by civil date.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[string]*entities.Task
	seq    map[string]int
	next   int
	health map[string]entities.DailyHealthRecord
	moods  []entities.MoodLogEntry
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[string]*entities.Task),
		seq:    make(map[string]int),
		health: make(map[string]entities.DailyHealthRecord),
	}
}

type memoryTaskRepository struct{ s *MemoryStore }

type memoryHealthRepository struct{ s *MemoryStore }

type memoryMoodRepository struct{ s *MemoryStore }

// NewMemoryTaskRepository returns a task repository backed by s
func NewMemoryTaskRepository(s *MemoryStore) ports.TaskRepository {
	return &memoryTaskRepository{s: s}
}

// NewMemoryHealthRepository returns a health repository backed by s
func NewMemoryHealthRepository(s *MemoryStore) ports.HealthRepository {
	return &memoryHealthRepository{s: s}
}

// NewMemoryMoodRepository returns a mood repository backed by s
func NewMemoryMoodRepository(s *MemoryStore) ports.MoodRepository {
	return &memoryMoodRepository{s: s}
}

func (r *memoryTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks[task.ID] = task.Clone()
	r.s.seq[task.ID] = r.s.next
	r.s.next++
	return nil
}

func (r *memoryTaskRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (r *memoryTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.s.tasks[task.ID] = task.Clone()
	return nil
}

func (r *memoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	delete(r.s.seq, id)
	return nil
}

func (r *memoryTaskRepository) MarkDone(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.IsDone = true
	t.UpdatedAt = at.UTC()
	return nil
}

func (r *memoryTaskRepository) UpdateDueDate(ctx context.Context, id string, due time.Time, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	d := due.UTC()
	t.DueDate = &d
	t.UpdatedAt = at.UTC()
	return nil
}

func (r *memoryTaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]*entities.Task, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		if filter.IsDone != nil && t.IsDone != *filter.IsDone {
			continue
		}
		tasks = append(tasks, t.Clone())
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.IsDone != b.IsDone {
			return !a.IsDone
		}
		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil
		}
		if a.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		if a.Importance != b.Importance {
			return a.Importance > b.Importance
		}
		return r.s.seq[a.ID] < r.s.seq[b.ID]
	})

	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}
	return tasks, nil
}

func (r *memoryHealthRepository) GetByDate(ctx context.Context, date time.Time) (*entities.DailyHealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.health[civil.DateString(date)]
	if !ok {
		return nil, entities.ErrRecordNotFound
	}
	return &rec, nil
}

func (r *memoryHealthRepository) Upsert(ctx context.Context, record *entities.DailyHealthRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := civil.DateString(record.Date)
	if existing, ok := r.s.health[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}
	r.s.health[key] = *record
	return nil
}

func (r *memoryHealthRepository) ListSince(ctx context.Context, from time.Time) ([]entities.DailyHealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []entities.DailyHealthRecord
	for _, rec := range r.s.health {
		if !rec.Date.Before(from) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryMoodRepository) Create(ctx context.Context, entry *entities.MoodLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.moods = append(r.s.moods, *entry)
	return nil
}

func (r *memoryMoodRepository) ListRecent(ctx context.Context, limit int) ([]entities.MoodLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.MoodLogEntry, len(r.s.moods))
	copy(out, r.s.moods)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryMoodRepository) LatestSince(ctx context.Context, since time.Time) (*entities.MoodLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *entities.MoodLogEntry
	for i := range r.s.moods {
		m := r.s.moods[i]
		if m.At.Before(since) {
			continue
		}
		if latest == nil || !m.At.Before(latest.At) {
			latest = &m
		}
	}
	if latest == nil {
		return nil, entities.ErrRecordNotFound
	}
	return latest, nil
}
