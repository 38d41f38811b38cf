package errors

import (
	"errors"
	"net/http"
)

// User-facing messages are kept in Spanish, matching the product's audience.
var (
	// ErrEmptyFields is returned when required request fields are blank.
	ErrEmptyFields = errors.New("No pueden ir campos vacios")
	// ErrTitleTooLong is returned when a task title exceeds 100 characters.
	ErrTitleTooLong = errors.New("El título no puede exceder los 100 caracteres")
	// ErrDescriptionTooLong is returned when a task description exceeds 500 characters.
	ErrDescriptionTooLong = errors.New("La descripción no puede exceder los 500 caracteres")
	// ErrCommentTooLong is returned when an audit comment exceeds 500 characters.
	ErrCommentTooLong = errors.New("El comentario no puede exceder los 500 caracteres")
	// ErrCompleteCommentRequired is returned when completing a task without a comment.
	ErrCompleteCommentRequired = errors.New("El comentario es requerido para completar la tarea")
	// ErrDeleteCommentRequired is returned when deleting a task without a comment.
	ErrDeleteCommentRequired = errors.New("El comentario es requerido para borrar la tarea")
	// ErrTaskNotOwned is returned when a task does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable so task
	// IDs cannot be probed across accounts.
	ErrTaskNotOwned = errors.New("La tarea no existe o no te pertenece")
	// ErrTaskAlreadyCompleted is returned on a second completion attempt.
	ErrTaskAlreadyCompleted = errors.New("La tarea ya está completada")
	// ErrTaskDeleted is returned when completing a soft-deleted task.
	ErrTaskDeleted = errors.New("La tarea está borrada")
	// ErrTaskAlreadyDeleted is returned on a second deletion attempt.
	ErrTaskAlreadyDeleted = errors.New("La tarea ya está borrada")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("El correo ya está registrado")
	// ErrUserNotFound is returned when no user matches the given email or id.
	ErrUserNotFound = errors.New("El Usuario no existe")
	// ErrUserNotVerified is returned on login before account confirmation.
	ErrUserNotVerified = errors.New("Tu cuenta no ha sido confirmada")
	// ErrBadPassword is returned when credentials do not match.
	ErrBadPassword = errors.New("Contraseña incorrecta")
	// ErrTokenInvalid is returned for unknown confirmation or reset tokens.
	ErrTokenInvalid = errors.New("Token no válido")
	// ErrForbidden is the single generic outcome for every bearer-token
	// failure; missing, malformed and expired tokens are never distinguished.
	ErrForbidden = errors.New("Token no válido o inexistente")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// collapses to a generic 500 so storage details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmptyFields),
		errors.Is(err, ErrTitleTooLong),
		errors.Is(err, ErrDescriptionTooLong),
		errors.Is(err, ErrCommentTooLong):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrCompleteCommentRequired),
		errors.Is(err, ErrDeleteCommentRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_REQUIRED")
	case errors.Is(err, ErrTaskNotOwned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrTaskAlreadyCompleted):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TASK_ALREADY_COMPLETED")
	case errors.Is(err, ErrTaskDeleted):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TASK_DELETED")
	case errors.Is(err, ErrTaskAlreadyDeleted):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TASK_ALREADY_DELETED")
	case errors.Is(err, ErrBadPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "BAD_PASSWORD")
	case errors.Is(err, ErrUserNotVerified):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_NOT_VERIFIED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Error en el servidor", "INTERNAL_ERROR")
	}
}
