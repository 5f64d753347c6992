package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/copyright-stamp/internal/config"
	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
	"github.com/phambaophuc/copyright-stamp/internal/services/queue"
	"github.com/phambaophuc/copyright-stamp/internal/services/storage"
	"go.uber.org/zap"
)

const (
	maxCacheAge   = 3600
	imageParamKey = "image"
)

// StampHandler serves the watermarking API. storage and queue may be nil
// when their backends are not configured.
type StampHandler struct {
	processor *processor.ImageProcessor
	storage   *storage.StorageService
	queue     *queue.QueueService
	logger    *zap.Logger
	config    *config.Config
}

func NewStampHandler(
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	queue *queue.QueueService,
	logger *zap.Logger,
	config *config.Config,
) *StampHandler {
	return &StampHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// StampImage watermarks the uploaded image. With upload=true the result is
// stored remotely and described as JSON; otherwise the image is returned.
func (h *StampHandler) StampImage(c *gin.Context) {
	file, header, err := c.Request.FormFile(imageParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := h.readUpload(file)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
		return
	}

	cacheKey := storage.GenerateCacheKey(data, h.processor.Config(), h.processor.FontName())

	if c.Query("upload") == "true" {
		h.stampAndUpload(c, data, header.Filename, cacheKey+":upload")
		return
	}

	if cached, found := h.tryGetFromCache(c.Request.Context(), cacheKey); found {
		h.respondWithImage(c, cached, "HIT")
		return
	}

	buffer, _, _, err := h.processor.ProcessImage(bytes.NewReader(data))
	if err != nil {
		h.respondProcessingError(c, err)
		return
	}

	h.setCacheData(c.Request.Context(), cacheKey, buffer.Bytes())
	h.respondWithImage(c, buffer.Bytes(), "MISS")
}

// SubmitJob queues a stamp job for a remote image.
func (h *StampHandler) SubmitJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Job queue is not configured")
		return
	}
	// Job records live in Redis; without it a job could never be looked up.
	if !h.storage.CacheEnabled() {
		h.respondError(c, http.StatusServiceUnavailable, "Job store is not configured")
		return
	}

	var req models.StampJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := validateJobRequest(req); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job := queue.NewJob(req)
	if err := h.queue.PublishJob(c.Request.Context(), job); err != nil {
		if errors.Is(err, storage.ErrCacheDisabled) {
			h.respondError(c, http.StatusServiceUnavailable, "Job store is not configured")
			return
		}
		h.logger.Error("Failed to publish job", zap.String("job_id", job.ID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to queue job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

func (h *StampHandler) GetJob(c *gin.Context) {
	job, err := h.storage.GetJob(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrCacheDisabled):
		h.respondError(c, http.StatusServiceUnavailable, "Job store is not configured")
		return
	case err != nil:
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	case job == nil:
		h.respondError(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// GetWatermark returns the active watermark configuration.
func (h *StampHandler) GetWatermark(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    h.processor.Config(),
	})
}

// HealthCheck
func (h *StampHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	services["rabbitmq"] = h.queue.HealthCheck()
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Font:      h.processor.FontName(),
			Anchor:    h.processor.Config().Position,
			Services:  services,
		},
	})
}

// GetStats reports cache and queue statistics for the configured backends.
func (h *StampHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now(),
	}

	if cacheStats, err := h.storage.GetCacheStats(c.Request.Context()); err == nil {
		stats["cache"] = cacheStats
	} else if !errors.Is(err, storage.ErrCacheDisabled) {
		h.logger.Error("Failed to get cache stats", zap.Error(err))
	}

	if h.queue != nil {
		if queueStats, err := h.queue.GetQueueStats(); err == nil {
			stats["queue"] = queueStats
		} else {
			h.logger.Error("Failed to get queue stats", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
