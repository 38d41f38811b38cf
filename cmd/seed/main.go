package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/FernandoZnga/todo-app-fullstack/internal/auth"
	"github.com/FernandoZnga/todo-app-fullstack/internal/config"
	"github.com/FernandoZnga/todo-app-fullstack/internal/db"
	"github.com/FernandoZnga/todo-app-fullstack/internal/logger"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
	"github.com/FernandoZnga/todo-app-fullstack/internal/repository"
	"github.com/FernandoZnga/todo-app-fullstack/internal/service"
)

const (
	demoName     = "Demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

// Seeds a confirmed demo user with one task in each lifecycle state, going
// through the services so every invariant (hashing, confirmation, audit
// comments) holds for the seeded data too.
func main() {
	cfg := config.Load()

	log, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, jwtService, nil)
	taskService := service.NewTaskService(taskRepo)

	ctx := context.Background()

	user, err := userService.Register(ctx, demoName, demoEmail, demoPassword)
	if err != nil {
		log.Fatal("register demo user", zap.Error(err))
	}
	if _, err := userService.Confirm(ctx, *user.VerificationToken); err != nil {
		log.Fatal("confirm demo user", zap.Error(err))
	}
	log.Info("demo user ready", zap.String("email", demoEmail))

	seedTasks := []struct {
		title, description string
		complete           bool
		remove             bool
	}{
		{title: "Primera tarea", description: "Queda pendiente"},
		{title: "Segunda tarea", description: "Se completa con comentario", complete: true},
		{title: "Tercera tarea", description: "Se borra con comentario", remove: true},
	}

	for _, t := range seedTasks {
		if err := taskService.CreateTask(ctx, user.ID, t.title, t.description); err != nil {
			log.Fatal("create task", zap.String("title", t.title), zap.Error(err))
		}
	}

	created, err := taskService.ListTasks(ctx, user.ID, model.FilterPending)
	if err != nil {
		log.Fatal("list tasks", zap.Error(err))
	}
	byTitle := make(map[string]uint, len(created))
	for _, task := range created {
		byTitle[task.Title] = task.ID
	}

	for _, t := range seedTasks {
		taskID, ok := byTitle[t.title]
		if !ok {
			continue
		}
		if t.complete {
			if err := taskService.CompleteTask(ctx, user.ID, taskID, "Completada durante el seed"); err != nil {
				log.Fatal("complete task", zap.Uint("id", taskID), zap.Error(err))
			}
		}
		if t.remove {
			if err := taskService.DeleteTask(ctx, user.ID, taskID, "Borrada durante el seed"); err != nil {
				log.Fatal("delete task", zap.Uint("id", taskID), zap.Error(err))
			}
		}
	}

	log.Info("seed completed", zap.Int("tasks", len(seedTasks)))
}
