package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/phambaophuc/copyright-stamp/pkg/utils"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

// readUpload validates the upload and returns its bytes.
func (h *StampHandler) readUpload(file multipart.File) ([]byte, error) {
	if err := h.processor.ValidateImage(file, h.config.Storage.MaxFileSize); err != nil {
		return nil, err
	}
	return io.ReadAll(file)
}

func validateJobRequest(req models.StampJobRequest) error {
	switch {
	case req.ImageURL == "" && req.ObjectPath == "":
		return fmt.Errorf("one of image_url or object_path is required")
	case req.ImageURL != "" && req.ObjectPath != "":
		return fmt.Errorf("image_url and object_path are mutually exclusive")
	}
	return nil
}

// === RESPONSE HANDLING ===

func (h *StampHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *StampHandler) respondProcessingError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrDecode) {
		h.respondError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
		return
	}
	h.logger.Error("Processing failed", zap.Error(err))
	h.respondError(c, http.StatusInternalServerError, "Failed to process image")
}

func (h *StampHandler) respondWithImage(c *gin.Context, data []byte, cacheStatus string) {
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(maxCacheAge))
	c.Header("X-Cache", cacheStatus)
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// === PROCESSING LOGIC ===

func (h *StampHandler) stampAndUpload(c *gin.Context, data []byte, filename, cacheKey string) {
	ctx := c.Request.Context()

	if !h.storage.UploadsEnabled() {
		h.respondError(c, http.StatusServiceUnavailable, "Upload storage is not configured")
		return
	}

	if cached, found := h.tryGetFromCache(ctx, cacheKey); found {
		var result models.StampedImage
		if err := json.Unmarshal(cached, &result); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: result})
			return
		}
	}

	buffer, format, stamped, err := h.processor.ProcessImage(bytes.NewReader(data))
	if err != nil {
		h.respondProcessingError(c, err)
		return
	}

	url, err := h.storage.Upload(ctx, buffer.Bytes(), utils.StampedFilename(filename, format), "image/"+format)
	if err != nil {
		h.logger.Error("Failed to upload to storage", zap.Error(err))
		h.respondError(c, http.StatusBadGateway, "Failed to store stamped image")
		return
	}

	bounds := stamped.Bounds()
	result := models.StampedImage{
		ID:          uuid.New().String(),
		Source:      filename,
		URL:         url,
		Format:      format,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		FileSize:    int64(buffer.Len()),
		ProcessedAt: time.Now(),
	}

	if encoded, err := json.Marshal(result); err == nil {
		h.setCacheData(ctx, cacheKey, encoded)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

// === UTILITY METHODS ===

func (h *StampHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}

// === CACHE OPERATIONS ===

func (h *StampHandler) tryGetFromCache(ctx context.Context, cacheKey string) ([]byte, bool) {
	cachedData, err := h.storage.GetFromCache(ctx, cacheKey)
	if err != nil {
		h.logger.Warn("Cache lookup failed", zap.String("cache_key", cacheKey), zap.Error(err))
		return nil, false
	}
	if cachedData == nil {
		return nil, false
	}

	h.logger.Debug("Cache hit", zap.String("cache_key", cacheKey))
	return cachedData, true
}

func (h *StampHandler) setCacheData(ctx context.Context, cacheKey string, data []byte) {
	if err := h.storage.SetCache(ctx, cacheKey, data); err != nil {
		h.logger.Warn("Failed to cache data", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}
