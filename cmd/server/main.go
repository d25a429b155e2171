package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"larismanis/internal/auth"
	"larismanis/internal/config"
	"larismanis/internal/functions"
	"larismanis/internal/handler"
	"larismanis/internal/middleware"
	"larismanis/internal/repository/postgres"
	"larismanis/internal/service"
	"larismanis/internal/styles"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:      pool,
		Tables:    postgres.NewTableNames(cfg.TablePrefix),
		TxManager: postgres.NewTransactionManager(pool),
		Logger:    logger,
	}
	planRepo := postgres.NewPlanRepository(repoConfig)
	sessionRepo := postgres.NewSessionRepository(repoConfig)
	generationRepo := postgres.NewGenerationRepository(repoConfig)

	// Serverless-functions client
	fnClient := functions.NewClient(cfg.FunctionsURL, logger)

	// Style presets (embedded YAML)
	styleRegistry, err := styles.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load style presets: %v", err)
	}

	// Services
	planService := service.NewPlanService(planRepo, fnClient, logger)
	chatService := service.NewChatService(sessionRepo, fnClient, logger)
	generationService := service.NewGenerationService(generationRepo, fnClient, styleRegistry, cfg.HistoryLimit, logger)

	// Handlers
	planHandler := handler.NewPlanHandler(planService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	generationHandler := handler.NewGenerationHandler(generationService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", planHandler.HealthCheck)

	// Content-calendar routes
	mux.HandleFunc("GET /api/plans", planHandler.ListPlans)
	mux.HandleFunc("POST /api/plans", planHandler.AddPlan)
	mux.HandleFunc("POST /api/plans/generate", planHandler.GeneratePlan)
	mux.HandleFunc("GET /api/plans/calendar", planHandler.Calendar)
	mux.HandleFunc("DELETE /api/plans/{id}", planHandler.DeletePlan)

	// Consultant chat routes
	mux.HandleFunc("GET /api/chat/session", chatHandler.GetSession)
	mux.HandleFunc("DELETE /api/chat/session", chatHandler.DeleteSession)
	mux.HandleFunc("POST /api/chat/consult", chatHandler.Consult)
	mux.HandleFunc("POST /api/chat/stream", chatHandler.StreamMessage) // SSE

	// Poster/caption generation routes
	mux.HandleFunc("POST /api/generations", generationHandler.Generate)
	mux.HandleFunc("GET /api/generations", generationHandler.History)
	mux.HandleFunc("GET /api/generations/styles", generationHandler.Styles)

	// Middleware chain, applied in reverse: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS must run before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
