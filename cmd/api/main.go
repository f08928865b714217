package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/registrar-labs/course-registry-api/api/swagger"
	"github.com/registrar-labs/course-registry-api/internal/handler"
	"github.com/registrar-labs/course-registry-api/internal/middleware"
	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/repository"
	"github.com/registrar-labs/course-registry-api/internal/schedule"
	"github.com/registrar-labs/course-registry-api/internal/service"
	"github.com/registrar-labs/course-registry-api/pkg/cache"
	"github.com/registrar-labs/course-registry-api/pkg/config"
	"github.com/registrar-labs/course-registry-api/pkg/database"
	"github.com/registrar-labs/course-registry-api/pkg/logger"
	corsmiddleware "github.com/registrar-labs/course-registry-api/pkg/middleware/cors"
	reqidmiddleware "github.com/registrar-labs/course-registry-api/pkg/middleware/requestid"
)

// @title Course Registry API
// @version 1.0.0
// @description Students and instructors linked to time-boxed courses
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()
	bounds := schedule.BoundsFromConfig(cfg.Schedule)

	studentRepo := repository.NewStudentRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	authSvc := service.NewAuthService(cfg.JWT, logr)
	studentSvc := service.NewStudentService(studentRepo, cfg.Pages.Students, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, cacheSvc, cfg.Pages.Instructors, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, cfg.Schedule.AllowedDays, bounds, cfg.Pages.Courses, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, studentRepo, cacheSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, courseRepo, instructorRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(courseRepo, nil, nil, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, exportSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	auth := middleware.JWT(authSvc)

	students := api.Group("/students")
	{
		students.GET("", studentHandler.List)
		students.GET("/:id", studentHandler.Get)
		students.GET("/:id/courses", studentHandler.Courses)
		students.POST("", auth, middleware.RequireScope(models.ScopeManageStudents), studentHandler.Create)
		students.PATCH("/:id", auth, middleware.RequireScope(models.ScopeManageStudents), studentHandler.Update)
		students.DELETE("/:id", auth, middleware.RequireScope(models.ScopeManageStudents), studentHandler.Delete)
	}

	instructors := api.Group("/instructors")
	{
		instructors.GET("", instructorHandler.List)
		instructors.GET("/:id", instructorHandler.Get)
		instructors.GET("/:id/courses", instructorHandler.Courses)
		instructors.POST("", auth, middleware.RequireScope(models.ScopeManageInstructors), instructorHandler.Create)
		instructors.PATCH("/:id", auth, middleware.RequireScope(models.ScopeManageInstructors), instructorHandler.Update)
		instructors.DELETE("/:id", auth, middleware.RequireScope(models.ScopeManageInstructors), instructorHandler.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", courseHandler.List)
		courses.GET("/:id", courseHandler.Get)
		courses.GET("/:id/students", courseHandler.Students)
		courses.GET("/:id/instructors", courseHandler.Instructors)
		courses.GET("/:id/roster", courseHandler.Roster)
		courses.POST("", auth, middleware.RequireScope(models.ScopeManageCourses), courseHandler.Create)
		courses.PATCH("/:id", auth, middleware.RequireScope(models.ScopeManageCourses), courseHandler.Update)
		courses.DELETE("/:id", auth, middleware.RequireScope(models.ScopeManageCourses), courseHandler.Delete)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.POST("", auth, middleware.RequireScope(models.ScopeManageEnrollments), enrollmentHandler.Create)
		enrollments.DELETE("/:id", auth, middleware.RequireScope(models.ScopeManageEnrollments), enrollmentHandler.Delete)
	}

	assignments := api.Group("/assignments")
	{
		assignments.POST("", auth, middleware.RequireScope(models.ScopeManageAssignments), assignmentHandler.Create)
		assignments.DELETE("/:id", auth, middleware.RequireScope(models.ScopeManageAssignments), assignmentHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
