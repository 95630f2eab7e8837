package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "interviewprep/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"interviewprep/internal/auth"
	"interviewprep/internal/cache"
	"interviewprep/internal/config"
	"interviewprep/internal/db"
	"interviewprep/internal/handler"
	"interviewprep/internal/model"
	"interviewprep/internal/repository"
	"interviewprep/internal/router"
	"interviewprep/internal/service"
	"interviewprep/internal/storage"
)

// @title Interview Prep API
// @version 1.0
// @description Mock interview scheduling API with slot booking, feedback, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.InterviewEvent{},
			&model.Interview{},
			&model.InterviewSlot{},
			&model.InterviewerApplication{},
			&model.Interviewer{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Interviewer{},
		&model.InterviewerApplication{},
		&model.InterviewSlot{},
		&model.Interview{},
		&model.InterviewEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("minio init: %v", err)
	}
	resumeStore, err := storage.NewResumeStore(context.Background(), minioClient, cfg.MinioBucket)
	if err != nil {
		log.Fatalf("resume store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)
	interviewRepo := repository.NewInterviewRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	interviewerRepo := repository.NewInterviewerRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	bookingService := service.NewBookingService(slotRepo, interviewRepo, eventRepo)
	interviewerService := service.NewInterviewerService(interviewerRepo, applicationRepo, interviewRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService, bookingService, resumeStore)
	interviewHandler := handler.NewInterviewHandler(bookingService)
	interviewerHandler := handler.NewInterviewerHandler(interviewerService, resumeStore)
	seedHandler := handler.NewSeedHandler(interviewerRepo, slotRepo)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		interviewHandler,
		interviewerHandler,
		seedHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
