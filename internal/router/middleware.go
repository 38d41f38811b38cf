package router

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/FernandoZnga/todo-app-fullstack/internal/auth"
	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/handler"
	"github.com/FernandoZnga/todo-app-fullstack/internal/service"
)

// userContext resolves the token subject against the store and attaches the
// user to the request context. The raw token is re-parsed into typed claims;
// a token whose subject no longer exists maps to the user-not-found outcome.
func userContext(users service.UserService, tokens *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return jwtErrorHandler(c, nil)
			}
			claims, err := tokens.ValidateToken(token.Raw)
			if err != nil || claims.UserID == 0 {
				return jwtErrorHandler(c, err)
			}

			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				he := apperrors.MapErrorToHTTP(err)
				return c.JSON(he.StatusCode, he.ToErrorResponse())
			}

			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}
