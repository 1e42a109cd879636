// @title Quiz Forge API
// @version 1.0
// @description Generates multiple-choice questions from an uploaded JSON knowledge base.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-forge/cmd/api/docs"
	"quiz-forge/internal/adapter/llm"
	"quiz-forge/internal/config"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/util"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// One completion client for the whole process
	completionClient, err := llm.NewCompletionClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create completion client", zap.Error(err))
	}
	appLogger.Info("Completion client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize services
	generationService := service.NewQuestionGenerationService(
		validation.NewValidator(),
		service.NewKnowledgeExtractor(cfg.Upload.MaxBytes),
		service.NewCompletionInvoker(completionClient),
	)

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(generationService, cfg.Upload)

	app := newApp(cfg, authService, questionHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully")
}

func newApp(cfg *config.Config, authService service.AuthService, questionHandler *handler.QuestionHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New(requestid.Config{Generator: util.NewULID}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api", middleware.OptionalAuth(authService, cfg.Auth.SessionCookie))
	api.Post("/gerar", questionHandler.GenerateQuestions)
	api.Post("/questions", questionHandler.GenerateQuestions)

	return app
}
