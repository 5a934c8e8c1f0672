package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerprep/interview/internal/config"
	"careerprep/interview/internal/evaluate"
	"careerprep/interview/internal/handlers"
	"careerprep/interview/internal/interview"
	"careerprep/interview/internal/jobs"
	"careerprep/interview/internal/llm"
	_ "careerprep/interview/internal/llm/gemini"
	"careerprep/interview/internal/prompts"
	"careerprep/interview/internal/question"
	"careerprep/interview/internal/routers"
	"careerprep/interview/internal/sandbox"
	"careerprep/interview/internal/store"
	"careerprep/interview/internal/summary"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, templateHandler *handlers.TemplateHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, templateHandler)
}

// initStore picks the session store backend from configuration.
func initStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store.NewGormStore(db)
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return store.NewGormStore(db)
	}
	return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
}

// initSandbox picks the code execution backend from configuration.
func initSandbox(cfg *config.Config, logger *zap.Logger) sandbox.Executor {
	if cfg.SandboxBackend == "docker" {
		executor, err := sandbox.NewDockerExecutor(sandbox.DefaultDockerLimits())
		if err != nil {
			logger.Warn("Docker sandbox unavailable, falling back to process sandbox", zap.Error(err))
			return sandbox.NewProcessExecutor()
		}
		return executor
	}
	return sandbox.NewProcessExecutor()
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.StoreBackend),
		zap.String("sandbox", cfg.SandboxBackend))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration. The service runs without one:
	// question generation and evaluation fall back to fixed defaults.
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Warn("AI provider unavailable, running with fallbacks", zap.Error(err))
		aiProvider = nil
	}

	sessionStore, err := initStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}

	executor := initSandbox(cfg, logger)

	orchestrator := interview.NewOrchestrator(
		sessionStore,
		question.NewGenerator(aiProvider, promptManager, logger),
		evaluate.NewEvaluator(aiProvider, promptManager, logger),
		executor,
		summary.NewGenerator(aiProvider, promptManager, logger),
		logger,
	)

	interviewHandler := handlers.NewInterviewHandler(orchestrator, executor, logger)
	templateHandler := handlers.NewTemplateHandler()
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, sessionStore, cfg)

	// janitor sweeps expired sessions on a schedule
	janitor := jobs.NewSessionJanitorJob(sessionStore, &jobs.JanitorConfig{
		Schedule: cfg.JanitorSchedule,
		MaxAge:   time.Duration(cfg.SessionMaxAgeHour) * time.Hour,
		Enabled:  cfg.JanitorEnabled,
	})
	if err := janitor.Start(); err != nil {
		logger.Error("Failed to start session janitor", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// no Timeout middleware: SSE responses outlive any sane request budget
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer)

	registerRoutes(router, interviewHandler, templateHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// WriteTimeout stays zero so streaming responses are never cut off;
	// ReadTimeout still bounds slow request bodies.
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	janitor.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
