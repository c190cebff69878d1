package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sakib-arifin/exam-portal-api/internal/config"
	"github.com/sakib-arifin/exam-portal-api/internal/database"
	"github.com/sakib-arifin/exam-portal-api/internal/handler"
	"github.com/sakib-arifin/exam-portal-api/internal/middleware"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
	"github.com/sakib-arifin/exam-portal-api/internal/router"
	"github.com/sakib-arifin/exam-portal-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Exam{},
		&models.Question{},
		&models.Attempt{},
		&models.Response{},
		&models.ExamAssignment{},
		&models.ExamSession{},
		&models.Feedback{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	reportRepo := repository.NewReportRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	examService := service.NewExamService(examRepo, validate, activityService, logger)
	questionService := service.NewQuestionService(questionRepo, examRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, examRepo, userRepo, activityService, logger)
	attemptService := service.NewAttemptService(attemptRepo, examRepo, questionRepo, sessionRepo, activityService, logger)
	gradingService := service.NewGradingService(attemptRepo, examRepo, activityService, logger)
	reportService := service.NewReportService(reportRepo, examRepo, questionRepo, attemptRepo, assignmentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, redisClient, cfg.FeedbackDedupeTTL, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		ExamHandler:       handler.NewExamHandler(examService, logger),
		QuestionHandler:   handler.NewQuestionHandler(questionService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, validate, logger),
		AttemptHandler:    handler.NewAttemptHandler(attemptService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		GradingHandler:    handler.NewGradingHandler(gradingService, validate, logger),
		FeedbackHandler:   handler.NewFeedbackHandler(feedbackService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
