package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courseapp/course-service/internal/config"
	"github.com/courseapp/course-service/internal/database"
	"github.com/courseapp/course-service/internal/email"
	"github.com/courseapp/course-service/internal/handler"
	"github.com/courseapp/course-service/internal/middleware"
	"github.com/courseapp/course-service/internal/repository"
	"github.com/courseapp/course-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database pool
	db, err := database.Connect(cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connection to database was successful")

	// Initialize layers
	repo := repository.NewRepository(db)
	var mailer service.WelcomeMailer
	if cfg.SMTPConfigured() {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, mailer)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := h.Routes(middleware.Authenticate(svc, logger))

	// CORS is restricted to the single configured front end origin
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	var root http.Handler = r
	root = corsHandler.Handler(root)
	root = middleware.RequestLogger(logger)(root)
	root = middleware.Recover(logger, cfg.EnableGlobalErrorLogging)(root)

	// Optional scheduled pool-stats logging
	if cfg.PoolStatsSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.PoolStatsSchedule, func() {
			stats := db.Stats()
			logger.WithFields(logrus.Fields{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
				"waits":  stats.WaitCount,
			}).Debug("db pool stats")
		})
		if err != nil {
			logger.Fatalf("Invalid POOL_STATS_SCHEDULE: %v", err)
		}
		c.Start()
		defer c.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown: drain in-flight requests, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
