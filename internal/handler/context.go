package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
)

// CurrentUserKey is the echo context key under which the authentication
// middleware stores the resolved caller.
const CurrentUserKey = "currentUser"

// currentUser returns the authenticated user attached by the middleware.
func currentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CurrentUserKey).(*model.User)
	return user, ok
}

// errorJSON renders a domain error through the single error-to-status mapping.
func errorJSON(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// forbiddenJSON is the generic response for any authentication failure.
func forbiddenJSON(c echo.Context) error {
	return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
		Error: apperrors.ErrForbidden.Error(),
		Code:  "FORBIDDEN",
	})
}
