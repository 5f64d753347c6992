package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/phambaophuc/copyright-stamp/internal/services/storage"
	"github.com/phambaophuc/copyright-stamp/pkg/utils"
	"go.uber.org/zap"
)

// source returns the image bytes a job refers to and the name used for the
// stamped result.
func (q *QueueService) source(ctx context.Context, job *models.StampJob) ([]byte, string, error) {
	switch {
	case job.ImageURL != "":
		data, _, err := utils.DownloadImage(ctx, job.ImageURL, q.maxFileSize)
		if err != nil {
			return nil, "", err
		}
		return data, job.ImageURL, nil
	case job.ObjectPath != "":
		data, err := q.storage.Download(ctx, job.ObjectPath, q.maxFileSize)
		if err != nil {
			return nil, "", fmt.Errorf("failed to download object: %w", err)
		}
		return data, job.ObjectPath, nil
	default:
		return nil, "", fmt.Errorf("job has neither image_url nor object_path")
	}
}

func (q *QueueService) processJob(ctx context.Context, job *models.StampJob) (*models.StampedImage, error) {
	sourceID := job.ImageURL + job.ObjectPath
	cacheKey := storage.GenerateCacheKey([]byte(sourceID), q.processor.Config(), q.processor.FontName())

	cachedData, err := q.storage.GetFromCache(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var cachedResult models.StampedImage
		if err := json.Unmarshal(cachedData, &cachedResult); err == nil {
			cachedResult.ID = job.ID
			return &cachedResult, nil
		}
		q.logger.Warn("Failed to unmarshal cached data", zap.Error(err))
	}

	imageData, name, err := q.source(ctx, job)
	if err != nil {
		return nil, err
	}

	buffer, format, stamped, err := q.processor.ProcessImage(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to stamp image: %w", err)
	}

	filename := utils.StampedFilename(name, format)
	url, err := q.storage.Upload(ctx, buffer.Bytes(), filename, "image/"+format)
	if err != nil {
		return nil, fmt.Errorf("failed to upload stamped image: %w", err)
	}

	bounds := stamped.Bounds()
	result := &models.StampedImage{
		ID:          job.ID,
		Source:      sourceID,
		URL:         url,
		Format:      format,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		FileSize:    int64(buffer.Len()),
		ProcessedAt: time.Now(),
	}

	resultBytes, _ := json.Marshal(result)
	if err := q.storage.SetCache(ctx, cacheKey, resultBytes); err != nil {
		q.logger.Warn("Failed to cache result", zap.Error(err))
	}

	return result, nil
}
