package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// pausingTaskRepo holds the first List call open after it has read, until
// release is closed.
type pausingTaskRepo struct {
	ports.TaskRepository
	armed   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func newPausingTaskRepo(inner ports.TaskRepository) *pausingTaskRepo {
	r := &pausingTaskRepo{
		TaskRepository: inner,
		read:           make(chan struct{}),
		release:        make(chan struct{}),
	}
	r.armed.Store(true)
	return r
}

func (r *pausingTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	tasks, err := r.TaskRepository.List(ctx, filter)
	if r.armed.CompareAndSwap(true, false) {
		close(r.read)
		<-r.release
	}
	return tasks, err
}

func TestViewCache_StoreAfterInvalidateIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var dest []string
	gen, hit := f.views.load(ctx, entities.ViewTaskList, taskListKey+"all", &dest)
	require.False(t, hit)

	f.views.Invalidate(ctx, entities.ViewTaskList)

	assert.False(t, f.views.store(ctx, entities.ViewTaskList, gen, taskListKey+"all", []string{"stale"}, 0))
	found, err := f.cache.Get(ctx, taskListKey+"all", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	gen = f.views.generation(entities.ViewTaskList)
	assert.True(t, f.views.store(ctx, entities.ViewTaskList, gen, taskListKey+"all", []string{"fresh"}, 0))
}

func TestViewCache_InvalidateLeavesOtherViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gen := f.views.generation(entities.ViewDashboard)
	f.views.Invalidate(ctx, entities.ViewTaskList)

	assert.Equal(t, gen, f.views.generation(entities.ViewDashboard))
}

func TestListTasks_ConcurrentCreateIsNotHiddenByCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	repo := newPausingTaskRepo(f.taskRepo)
	svc := NewTaskService(repo, f.health, f.moods, f.views, f.metrics, logger.NewNop())
	svc.now = func() time.Time { return f.now }

	listed := make(chan []*entities.Task, 1)
	go func() {
		tasks, err := svc.ListTasks(ctx, ports.TaskFilter{})
		assert.NoError(t, err)
		listed <- tasks
	}()

	<-repo.read
	_, err := svc.CreateTask(ctx, ports.CreateTaskRequest{Title: "Revise notes"})
	require.NoError(t, err)
	close(repo.release)

	assert.Empty(t, <-listed, "the in-flight list reports what it read")

	tasks, err := svc.ListTasks(ctx, ports.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Revise notes", tasks[0].Title)
}

func TestDashboard_ConcurrentDoneIsNotHiddenByCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, ports.CreateTaskRequest{Title: "Essay draft"})
	require.NoError(t, err)

	repo := newPausingTaskRepo(f.taskRepo)
	dashboard := NewDashboardService(repo, f.health, f.moods, f.views, logger.NewNop())
	dashboard.now = func() time.Time { return f.now }

	built := make(chan *ports.DashboardView, 1)
	go func() {
		view, err := dashboard.Dashboard(ctx)
		assert.NoError(t, err)
		built <- view
	}()

	<-repo.read
	require.NoError(t, f.tasks.MarkDone(ctx, task.ID))
	close(repo.release)

	assert.Equal(t, 1, (<-built).OpenCount)

	view, err := dashboard.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, view.OpenCount)
	assert.Empty(t, view.Top)
}
