package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
)

// fakeTaskRepo is an in-memory TaskRepository honoring the same transition
// contract as the SQL-backed one, used to exercise full lifecycle scenarios
// through the service.
type fakeTaskRepo struct {
	nextID uint
	tasks  map[uint]*model.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uint]*model.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error) {
	var out []model.Task
	for id := uint(1); id <= f.nextID; id++ {
		t, ok := f.tasks[id]
		if !ok || t.UserID != ownerID {
			continue
		}
		if filter.Matches(*t) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Complete(_ context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return apperrors.ErrTaskNotOwned
	}
	if t.Deleted {
		return apperrors.ErrTaskDeleted
	}
	if t.Completed {
		return apperrors.ErrTaskAlreadyCompleted
	}
	t.Completed = true
	t.CompletedAt = &now
	t.CompletionComment = &comment
	return nil
}

func (f *fakeTaskRepo) SoftDelete(_ context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return apperrors.ErrTaskNotOwned
	}
	if t.Deleted {
		return apperrors.ErrTaskAlreadyDeleted
	}
	t.Deleted = true
	t.DeletedAt = &now
	t.DeletionComment = &comment
	return nil
}

const (
	aliceID uint = 1
	bobID   uint = 2
)

func TestTaskLifecycle_CompleteFlow(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, aliceID, "T1", "D1"))

	pending, err := svc.ListTasks(ctx, aliceID, model.FilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "T1", pending[0].Title)
	assert.False(t, pending[0].Completed)
	assert.False(t, pending[0].Deleted)

	require.NoError(t, svc.CompleteTask(ctx, aliceID, pending[0].ID, "done"))

	completed, err := svc.ListTasks(ctx, aliceID, model.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Completed)
	assert.NotNil(t, completed[0].CompletedAt)
	require.NotNil(t, completed[0].CompletionComment)
	assert.Equal(t, "done", *completed[0].CompletionComment)

	// the completed task left the pending view
	pending, err = svc.ListTasks(ctx, aliceID, model.FilterPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTaskLifecycle_DoubleCompleteKeepsFirstSideEffects(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, aliceID, "T1", "D1"))
	require.NoError(t, svc.CompleteTask(ctx, aliceID, 1, "primera"))

	first := *repo.tasks[1]

	err := svc.CompleteTask(ctx, aliceID, 1, "segunda")
	assert.ErrorIs(t, err, apperrors.ErrTaskAlreadyCompleted)

	assert.Equal(t, first, *repo.tasks[1], "second attempt must not alter the task")
	assert.Equal(t, "primera", *repo.tasks[1].CompletionComment)
}

func TestTaskLifecycle_DeletionRules(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, aliceID, "completada", "se borra después"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "borrada", "se borra dos veces"))

	require.NoError(t, svc.CompleteTask(ctx, aliceID, 1, "hecha"))

	// deleting a completed task is allowed, completion state survives
	require.NoError(t, svc.DeleteTask(ctx, aliceID, 1, "ya no hace falta"))
	assert.True(t, repo.tasks[1].Completed)
	assert.True(t, repo.tasks[1].Deleted)
	assert.Equal(t, "hecha", *repo.tasks[1].CompletionComment)

	// deleting twice fails
	require.NoError(t, svc.DeleteTask(ctx, aliceID, 2, "fuera"))
	assert.ErrorIs(t, svc.DeleteTask(ctx, aliceID, 2, "otra vez"), apperrors.ErrTaskAlreadyDeleted)

	// completing a deleted task fails
	assert.ErrorIs(t, svc.CompleteTask(ctx, aliceID, 2, "tarde"), apperrors.ErrTaskDeleted)
}

func TestTaskLifecycle_OwnershipIsOpaque(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, aliceID, "de alice", "privada"))

	// Bob probing Alice's task gets the same outcome as probing an id that
	// does not exist at all.
	errForeign := svc.CompleteTask(ctx, bobID, 1, "mía ahora")
	errMissing := svc.CompleteTask(ctx, bobID, 999, "fantasma")
	assert.ErrorIs(t, errForeign, apperrors.ErrTaskNotOwned)
	assert.Equal(t, errMissing, errForeign)

	assert.ErrorIs(t, svc.DeleteTask(ctx, bobID, 1, "fuera"), apperrors.ErrTaskNotOwned)

	// and Bob's listings never include it
	tasks, err := svc.ListTasks(ctx, bobID, model.FilterAllIncludingDeleted)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskLifecycle_FilterPartition(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	// one pending, one completed, one deleted, one completed-then-deleted,
	// plus noise owned by someone else
	require.NoError(t, svc.CreateTask(ctx, aliceID, "pendiente", "d"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "completada", "d"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "borrada", "d"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "completada y borrada", "d"))
	require.NoError(t, svc.CreateTask(ctx, bobID, "de bob", "d"))

	require.NoError(t, svc.CompleteTask(ctx, aliceID, 2, "ok"))
	require.NoError(t, svc.DeleteTask(ctx, aliceID, 3, "fuera"))
	require.NoError(t, svc.CompleteTask(ctx, aliceID, 4, "ok"))
	require.NoError(t, svc.DeleteTask(ctx, aliceID, 4, "fuera"))

	everything, err := svc.ListTasks(ctx, aliceID, model.FilterAllIncludingDeleted)
	require.NoError(t, err)
	require.Len(t, everything, 4)

	seen := make(map[uint]int)
	for _, f := range []model.TaskFilter{model.FilterPending, model.FilterCompleted, model.FilterDeleted} {
		tasks, err := svc.ListTasks(ctx, aliceID, f)
		require.NoError(t, err)
		for _, task := range tasks {
			seen[task.ID]++
		}
	}

	// pending ∪ completed ∪ deleted covers every task exactly once
	assert.Len(t, seen, len(everything))
	for id, count := range seen {
		assert.Equal(t, 1, count, "task %d appeared in more than one partition", id)
	}

	// "all" hides deleted tasks but keeps completed ones
	visible, err := svc.ListTasks(ctx, aliceID, model.FilterAll)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
	for _, task := range visible {
		assert.False(t, task.Deleted)
	}
}

func TestTaskLifecycle_AuditFieldInvariants(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()

	require.NoError(t, svc.CreateTask(ctx, aliceID, "a", "d"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "b", "d"))
	require.NoError(t, svc.CreateTask(ctx, aliceID, "c", "d"))
	require.NoError(t, svc.CompleteTask(ctx, aliceID, 1, "listo"))
	require.NoError(t, svc.DeleteTask(ctx, aliceID, 2, "sobra"))

	all, err := svc.ListTasks(ctx, aliceID, model.FilterAllIncludingDeleted)
	require.NoError(t, err)

	for _, task := range all {
		if task.Completed {
			assert.NotNil(t, task.CompletedAt)
			require.NotNil(t, task.CompletionComment)
			assert.NotEmpty(t, *task.CompletionComment)
		} else {
			assert.Nil(t, task.CompletedAt)
			assert.Nil(t, task.CompletionComment)
		}
		if task.Deleted {
			assert.NotNil(t, task.DeletedAt)
			require.NotNil(t, task.DeletionComment)
			assert.NotEmpty(t, *task.DeletionComment)
		} else {
			assert.Nil(t, task.DeletedAt)
			assert.Nil(t, task.DeletionComment)
		}
	}
}
