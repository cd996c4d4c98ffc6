package main

import (
	"net/http"
	"time"

	"taskhub/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/handler"
	"taskhub/internal/logging"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/router"
	"taskhub/internal/service"
)

// @title TaskHub API
// @version 1.0
// @description Project and task management API with capacity-aware employee workload reporting.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	log := logging.New()
	defer func() { _ = log.Sync() }()

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.Skill{},
		&model.EmployeeSkill{},
		&model.Project{},
		&model.ProjectEmployee{},
		&model.Task{},
		&model.Milestone{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)
	skillRepo := repository.NewSkillRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	milestoneRepo := repository.NewMilestoneRepository(gormDB)

	// Auth components
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	jwtService := auth.NewJWTService(cfg.JWTSecret, tokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	employeeService := service.NewEmployeeService(employeeRepo, taskRepo, projectRepo, cacheClient)
	workloadService := service.NewWorkloadService(employeeRepo, taskRepo, cacheClient)
	projectService := service.NewProjectService(projectRepo, employeeRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, projectRepo, employeeRepo, cacheClient)
	milestoneService := service.NewMilestoneService(milestoneRepo, projectRepo)
	skillService := service.NewSkillService(skillRepo, employeeRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, tokenTTL, cfg.CookieSecure)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService)
	employeeHandler := handler.NewEmployeeHandler(employeeService, workloadService)
	skillHandler := handler.NewSkillHandler(skillService)

	router.Register(
		e,
		cfg,
		log,
		tokenStore,
		authHandler,
		projectHandler,
		taskHandler,
		milestoneHandler,
		employeeHandler,
		skillHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
