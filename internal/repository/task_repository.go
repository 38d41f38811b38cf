package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
)

// TaskRepository defines task persistence operations. Complete and SoftDelete
// perform their check-then-set inside a single transaction with a row lock,
// so concurrent transitions against the same task cannot race.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error)
	Complete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error
	SoftDelete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	switch filter {
	case model.FilterPending:
		q = q.Where("completed = ? AND deleted = ?", false, false)
	case model.FilterCompleted:
		q = q.Where("completed = ? AND deleted = ?", true, false)
	case model.FilterDeleted:
		q = q.Where("deleted = ?", true)
	case model.FilterAllIncludingDeleted:
		// no state condition
	default: // model.FilterAll
		q = q.Where("deleted = ?", false)
	}

	var tasks []model.Task
	if err := q.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// lockOwnedTask loads the task under FOR UPDATE, folding absent and
// foreign-owned tasks into the same outcome.
func lockOwnedTask(tx *gorm.DB, ownerID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotOwned
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Complete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockOwnedTask(tx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.Deleted {
			return apperrors.ErrTaskDeleted
		}
		if task.Completed {
			return apperrors.ErrTaskAlreadyCompleted
		}
		return tx.Model(task).Updates(map[string]interface{}{
			"completed":          true,
			"completed_at":       now,
			"completion_comment": comment,
		}).Error
	})
}

func (r *taskRepository) SoftDelete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockOwnedTask(tx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.Deleted {
			return apperrors.ErrTaskAlreadyDeleted
		}
		// Completion state is left untouched; deleting a completed task is allowed.
		return tx.Model(task).Updates(map[string]interface{}{
			"deleted":          true,
			"deleted_at":       now,
			"deletion_comment": comment,
		}).Error
	})
}
