package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/copyright-stamp/internal/config"
	"github.com/phambaophuc/copyright-stamp/internal/http/handlers"
	"github.com/phambaophuc/copyright-stamp/internal/http/routes"
	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
	"github.com/phambaophuc/copyright-stamp/internal/services/queue"
	"github.com/phambaophuc/copyright-stamp/internal/services/storage"
	"github.com/phambaophuc/copyright-stamp/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	wm, err := config.LoadWatermark(cfg.Server.WatermarkConfig)
	if err != nil {
		logger.Fatal("Failed to load watermark configuration",
			zap.String("path", cfg.Server.WatermarkConfig), zap.Error(err))
	}

	font, err := processor.LoadFont(wm.FontPath)
	if err != nil {
		logger.Fatal("Failed to load font", zap.String("path", wm.FontPath), zap.Error(err))
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessor(wm, font, cfg.Batch.JPEGQuality)

	storageService, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}
	defer storageService.Close()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var queueService *queue.QueueService
	if cfg.RabbitMQ.URL != "" {
		queueService, err = queue.NewQueueService(cfg.RabbitMQ.URL, imageProcessor, storageService, cfg.Storage.MaxFileSize, logger)
		if err != nil {
			// Continue without queue service for basic functionality
			logger.Warn("Failed to initialize queue service", zap.Error(err))
		} else {
			defer queueService.Close()
			for i := 1; i <= cfg.RabbitMQ.Workers; i++ {
				if err := queueService.StartWorker(workerCtx, i); err != nil {
					logger.Error("Failed to start worker", zap.Int("worker_id", i), zap.Error(err))
				}
			}
		}
	}

	// Initialize handlers
	stampHandler := handlers.NewStampHandler(imageProcessor, storageService, queueService, logger, cfg)

	router := routes.NewRouter(stampHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("font", font.Name()),
			zap.Stringer("position", wm.Position))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopWorkers()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
