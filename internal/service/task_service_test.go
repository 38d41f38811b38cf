package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Complete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	args := m.Called(ctx, ownerID, taskID, comment, now)
	return args.Error(0)
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, ownerID, taskID uint, comment string, now time.Time) error {
	args := m.Called(ctx, ownerID, taskID, comment, now)
	return args.Error(0)
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		description   string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:        "successful creation",
			title:       "Comprar café",
			description: "Para la oficina",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
					return task.UserID == 1 && task.Title == "Comprar café" && !task.Completed && !task.Deleted
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "trims surrounding whitespace",
			title:       "  T1  ",
			description: "  D1  ",
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
					return task.Title == "T1" && task.Description == "D1"
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "empty title",
			title:         "",
			description:   "algo",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrEmptyFields,
		},
		{
			name:          "whitespace-only description",
			title:         "algo",
			description:   "   ",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrEmptyFields,
		},
		{
			name:          "title over 100 characters",
			title:         strings.Repeat("a", 101),
			description:   "algo",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrTitleTooLong,
		},
		{
			name:          "description over 500 characters",
			title:         "algo",
			description:   strings.Repeat("b", 501),
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo)
			err := service.CreateTask(context.Background(), 1, tt.title, tt.description)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_CompleteTask(t *testing.T) {
	tests := []struct {
		name          string
		comment       string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:    "successful completion passes trimmed comment",
			comment: "  hecho  ",
			setupMock: func(m *MockTaskRepository) {
				m.On("Complete", mock.Anything, uint(1), uint(5), "hecho", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "blank comment never reaches the repository",
			comment:       "   ",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrCompleteCommentRequired,
		},
		{
			name:          "comment over 500 characters",
			comment:       strings.Repeat("c", 501),
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrCommentTooLong,
		},
		{
			name:    "already completed",
			comment: "otra vez",
			setupMock: func(m *MockTaskRepository) {
				m.On("Complete", mock.Anything, uint(1), uint(5), "otra vez", mock.Anything).
					Return(apperrors.ErrTaskAlreadyCompleted)
			},
			expectedError: apperrors.ErrTaskAlreadyCompleted,
		},
		{
			name:    "deleted task cannot be completed",
			comment: "intento",
			setupMock: func(m *MockTaskRepository) {
				m.On("Complete", mock.Anything, uint(1), uint(5), "intento", mock.Anything).
					Return(apperrors.ErrTaskDeleted)
			},
			expectedError: apperrors.ErrTaskDeleted,
		},
		{
			name:    "foreign or missing task",
			comment: "intento",
			setupMock: func(m *MockTaskRepository) {
				m.On("Complete", mock.Anything, uint(1), uint(5), "intento", mock.Anything).
					Return(apperrors.ErrTaskNotOwned)
			},
			expectedError: apperrors.ErrTaskNotOwned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo)
			err := service.CompleteTask(context.Background(), 1, 5, tt.comment)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	tests := []struct {
		name          string
		comment       string
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:    "successful deletion",
			comment: "ya no aplica",
			setupMock: func(m *MockTaskRepository) {
				m.On("SoftDelete", mock.Anything, uint(2), uint(9), "ya no aplica", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "blank comment never reaches the repository",
			comment:       "",
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrDeleteCommentRequired,
		},
		{
			name:    "already deleted",
			comment: "otra vez",
			setupMock: func(m *MockTaskRepository) {
				m.On("SoftDelete", mock.Anything, uint(2), uint(9), "otra vez", mock.Anything).
					Return(apperrors.ErrTaskAlreadyDeleted)
			},
			expectedError: apperrors.ErrTaskAlreadyDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo)
			err := service.DeleteTask(context.Background(), 2, 9, tt.comment)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	expected := []model.Task{{ID: 1, UserID: 3, Title: "T1"}}
	mockRepo.On("ListByOwner", mock.Anything, uint(3), model.FilterPending).Return(expected, nil)

	service := NewTaskService(mockRepo)
	tasks, err := service.ListTasks(context.Background(), 3, model.FilterPending)

	assert.NoError(t, err)
	assert.Equal(t, expected, tasks)
	mockRepo.AssertExpectations(t)
}
