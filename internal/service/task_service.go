package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
	"github.com/FernandoZnga/todo-app-fullstack/internal/repository"
)

// TaskService mediates every task state transition: creation, filtered
// retrieval, completion and soft-deletion. Input is validated here, before
// any storage call; atomicity of the transitions themselves lives in the
// repository.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint, title, description string) error
	ListTasks(ctx context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error)
	CompleteTask(ctx context.Context, ownerID, taskID uint, comment string) error
	DeleteTask(ctx context.Context, ownerID, taskID uint, comment string) error
}

type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

// CreateTask inserts a pending task owned by ownerID.
func (s *taskService) CreateTask(ctx context.Context, ownerID uint, title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" || description == "" {
		return apperrors.ErrEmptyFields
	}
	if utf8.RuneCountInString(title) > model.TaskTitleMaxLen {
		return apperrors.ErrTitleTooLong
	}
	if utf8.RuneCountInString(description) > model.TaskDescriptionMaxLen {
		return apperrors.ErrDescriptionTooLong
	}

	task := &model.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
	}
	return s.taskRepo.Create(ctx, task)
}

// ListTasks returns the owner's tasks under the given filter. Filter
// normalization happens at the handler; the repository only ever sees a
// known filter value.
func (s *taskService) ListTasks(ctx context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID, filter)
}

// CompleteTask marks the task completed with a mandatory audit comment.
func (s *taskService) CompleteTask(ctx context.Context, ownerID, taskID uint, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return apperrors.ErrCompleteCommentRequired
	}
	if utf8.RuneCountInString(comment) > model.TaskCommentMaxLen {
		return apperrors.ErrCommentTooLong
	}
	return s.taskRepo.Complete(ctx, ownerID, taskID, comment, time.Now())
}

// DeleteTask soft-deletes the task with a mandatory audit comment.
func (s *taskService) DeleteTask(ctx context.Context, ownerID, taskID uint, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return apperrors.ErrDeleteCommentRequired
	}
	if utf8.RuneCountInString(comment) > model.TaskCommentMaxLen {
		return apperrors.ErrCommentTooLong
	}
	return s.taskRepo.SoftDelete(ctx, ownerID, taskID, comment, time.Now())
}
