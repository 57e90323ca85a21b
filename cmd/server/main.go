package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/personalens-api/internal/config"
	"github.com/yourusername/personalens-api/internal/handler"
	"github.com/yourusername/personalens-api/internal/middleware"
	"github.com/yourusername/personalens-api/internal/repository"
	"github.com/yourusername/personalens-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting PersonaLens API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepo(pool)
	analysisRepo := repository.NewAnalysisRepo(pool)

	// ── Services ─────────────────────────────────────────
	tokenService := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	analysisService := service.NewAnalysisService(analysisRepo)

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(userRepo, tokenService)
	analyzeHandler := handler.NewAnalyzeHandler(analysisService)

	// ── Middleware ────────────────────────────────────────
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "connected"
		status := "ok"
		if err := pool.Ping(c.Request.Context()); err != nil {
			log.Error().Err(err).Msg("Database health check failed")
			dbStatus = "disconnected"
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"service":  "personalens-api",
			"database": dbStatus,
			"time":     time.Now().UTC(),
		})
	})

	// Auth (unauthenticated)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/", authMiddleware.Authenticate())
	{
		api.GET("/auth/me", authHandler.Me)

		api.POST("/analyze/cv", analyzeHandler.AnalyzeCV)
		api.GET("/analyze/history", analyzeHandler.History)
		api.GET("/analyze/:id", analyzeHandler.GetAnalysis)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("PersonaLens API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
