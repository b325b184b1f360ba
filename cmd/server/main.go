package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lexportal/internal/api"
	"lexportal/internal/apiclient"
	"lexportal/internal/database"
	"lexportal/internal/database/repositories"
	"lexportal/internal/session"
	"lexportal/pkg/config"
	"lexportal/pkg/logger"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/server.yaml")
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	log.Info("Starting portal gateway")
	log.Info("Configuration loaded: %+v", cfg.SanitizeForLogging())

	gin.SetMode(cfg.Server.Mode)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	client := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	sessionRepo := repositories.NewSessionRepository(db)
	sessions := session.NewManager(client, sessionRepo, cfg.Session, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartCleanup(ctx)

	services := api.NewServices(db, client, sessions, log, cfg)

	router := gin.New()
	api.SetupRoutes(router, services)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Listening on %s", srv.Addr)

		var err error
		if cfg.Server.TLS.Enabled {
			err = srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
	}

	log.Info("Server stopped")
}
