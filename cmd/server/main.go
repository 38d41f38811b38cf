package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/FernandoZnga/todo-app-fullstack/docs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/FernandoZnga/todo-app-fullstack/internal/auth"
	"github.com/FernandoZnga/todo-app-fullstack/internal/cache"
	"github.com/FernandoZnga/todo-app-fullstack/internal/config"
	"github.com/FernandoZnga/todo-app-fullstack/internal/db"
	"github.com/FernandoZnga/todo-app-fullstack/internal/handler"
	"github.com/FernandoZnga/todo-app-fullstack/internal/logger"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
	"github.com/FernandoZnga/todo-app-fullstack/internal/repository"
	"github.com/FernandoZnga/todo-app-fullstack/internal/router"
	"github.com/FernandoZnga/todo-app-fullstack/internal/service"
)

// @title Task Tracker API
// @version 1.0
// @description Multi-user task tracker with email confirmation, JWT login and audited task lifecycle.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	log, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, jwtService, cacheClient)
	taskService := service.NewTaskService(taskRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	router.Register(e, cfg, userHandler, taskHandler, userService, jwtService)

	log.Info("server starting",
		zap.String("port", cfg.ServerPort),
		zap.Duration("jwt_expiry", cfg.JWTExpiry),
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
