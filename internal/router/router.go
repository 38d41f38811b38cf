package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/FernandoZnga/todo-app-fullstack/internal/auth"
	"github.com/FernandoZnga/todo-app-fullstack/internal/config"
	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/handler"
	"github.com/FernandoZnga/todo-app-fullstack/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	userService service.UserService,
	jwtService *auth.JWTService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", userHandler.Register)
	e.GET("/users/confirm/:token", userHandler.Confirm)
	e.POST("/users/login", userHandler.Login)
	e.POST("/users/forgot-password", userHandler.ForgotPassword)
	e.GET("/users/forgot-password/:token", userHandler.VerifyResetToken)
	e.POST("/users/forgot-password/:token", userHandler.ResetPassword)

	// Secured routes: bearer token from the Authorization header only, then
	// subject resolution against the store.
	secured := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:   []byte(cfg.JWTSecret),
			TokenLookup:  "header:" + echo.HeaderAuthorization,
			ErrorHandler: jwtErrorHandler,
		}),
		userContext(userService, jwtService),
	)

	secured.GET("/users/profile", userHandler.Profile)

	secured.POST("/tasks", taskHandler.Create)
	secured.GET("/tasks", taskHandler.List)
	secured.PUT("/tasks/:id/complete", taskHandler.Complete)
	secured.DELETE("/tasks/:id", taskHandler.Delete)
}

// jwtErrorHandler collapses every token failure (missing, malformed, expired,
// bad signature) into one generic response.
func jwtErrorHandler(c echo.Context, _ error) error {
	return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
		Error: apperrors.ErrForbidden.Error(),
		Code:  "FORBIDDEN",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
