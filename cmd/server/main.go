package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ssuzuki/toukidocs/internal/config"
	"github.com/ssuzuki/toukidocs/internal/database"
	"github.com/ssuzuki/toukidocs/internal/handlers"
	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/middleware"
	"github.com/ssuzuki/toukidocs/internal/repository"
	"github.com/ssuzuki/toukidocs/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting toukidocs API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"storage":     cfg.Storage.Driver,
	})

	// Open the selected storage backend
	ctx := context.Background()
	var (
		repo repository.StateRepository
		db   *database.Database
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err = database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", err, map[string]interface{}{
				"host": cfg.Database.Host,
				"port": cfg.Database.Port,
				"name": cfg.Database.Name,
			})
		}
		defer db.Close()

		repo, err = repository.NewPostgresStore(ctx, db)
		if err != nil {
			log.Fatal("Failed to initialize postgres store", err, nil)
		}
		log.Info("Database connection established", map[string]interface{}{
			"host":     cfg.Database.Host,
			"database": cfg.Database.Name,
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})
	default:
		repo, err = repository.NewFileStore(cfg.Storage.DataFile)
		if err != nil {
			log.Fatal("Failed to open data file", err, map[string]interface{}{
				"path": cfg.Storage.DataFile,
			})
		}
		log.Info("File store opened", map[string]interface{}{
			"path": cfg.Storage.DataFile,
		})
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize service layer
	newID := uuid.NewString
	siteService := services.NewSiteService(repo, log, newID)
	documentService := services.NewDocumentService(repo, log, time.Now)
	masterService := services.NewMasterService(repo, log, newID)
	exportService := services.NewExportService(repo, log, newID, time.Now)

	// Initialize handlers
	siteHandler := handlers.NewSiteHandler(siteService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	masterHandler := handlers.NewMasterHandler(masterService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		sites := v1.Group("/sites")
		{
			sites.GET("", siteHandler.List)
			sites.POST("", siteHandler.Create)
			sites.GET("/:id", siteHandler.Get)
			sites.PUT("/:id", siteHandler.Update)
			sites.DELETE("/:id", siteHandler.Delete)
			sites.PUT("/:id/activate", siteHandler.Activate)

			sites.GET("/:id/plan", documentHandler.Plan)
			sites.GET("/:id/documents/:key", documentHandler.Render)
			sites.PUT("/:id/picks/:key", documentHandler.UpdatePick)
			sites.GET("/:id/render", documentHandler.RenderAll)
		}

		contractors := v1.Group("/contractors")
		{
			contractors.GET("", masterHandler.ListContractors)
			contractors.POST("", masterHandler.SaveContractor)
			contractors.DELETE("/:id", masterHandler.DeleteContractor)
		}

		scriveners := v1.Group("/scriveners")
		{
			scriveners.GET("", masterHandler.ListScriveners)
			scriveners.POST("", masterHandler.SaveScrivener)
			scriveners.DELETE("/:id", masterHandler.DeleteScrivener)
		}

		v1.GET("/export", exportHandler.Export)
		v1.POST("/import", exportHandler.Import)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
