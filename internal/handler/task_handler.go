package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
	"github.com/FernandoZnga/todo-app-fullstack/internal/service"
)

// TaskHandler handles task endpoints. Every route requires an authenticated
// caller; the owner is always taken from the request context, never from the
// request body.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// CommentRequest carries the mandatory audit comment for a state transition.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ListTasksResponse represents a filtered task listing.
type ListTasksResponse struct {
	Message string       `json:"message"`
	Tasks   []model.Task `json:"tasks"`
}

// Create godoc
// @Summary Create a pending task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return forbiddenJSON(c)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.taskService.CreateTask(c.Request().Context(), user.ID, req.Title, req.Description); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tarea agregada correctamente",
	})
}

// List godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param filter query string false "all | pending | completed | deleted | all_including_deleted (unknown values fall back to all)"
// @Success 200 {object} ListTasksResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return forbiddenJSON(c)
	}

	filter := model.ParseTaskFilter(c.QueryParam("filter"))
	tasks, err := h.taskService.ListTasks(c.Request().Context(), user.ID, filter)
	if err != nil {
		return errorJSON(c, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return c.JSON(http.StatusOK, ListTasksResponse{
		Message: fmt.Sprintf("Se encontraron %d tarea(s)", len(tasks)),
		Tasks:   tasks,
	})
}

// Complete godoc
// @Summary Complete a task with an audit comment
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body CommentRequest true "Audit comment"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete [put]
func (h *TaskHandler) Complete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return forbiddenJSON(c)
	}

	taskID, err := parseTaskID(c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.taskService.CompleteTask(c.Request().Context(), user.ID, taskID, req.Comment); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tarea completada exitosamente",
	})
}

// Delete godoc
// @Summary Soft-delete a task with an audit comment
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body CommentRequest true "Audit comment"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return forbiddenJSON(c)
	}

	taskID, err := parseTaskID(c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), user.ID, taskID, req.Comment); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tarea borrada exitosamente",
	})
}

// parseTaskID folds a malformed id into the same outcome as a missing task.
func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrTaskNotOwned
	}
	return uint(id), nil
}
