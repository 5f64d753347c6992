package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix = "stamp_cache:"
	jobPrefix   = "stamp_job:"
)

// GetFromCache returns nil data on a miss or when the cache is disabled.
func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	if !s.CacheEnabled() {
		return nil, nil
	}
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	if !s.CacheEnabled() {
		return nil
	}
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GenerateCacheKey derives the key for a stamped result from the source
// identity (upload bytes, URL or object path) and every configuration field
// that affects rendering.
func GenerateCacheKey(source []byte, cfg models.WatermarkConfig, fontName string) string {
	hash := md5.New()
	hash.Write(source)
	fmt.Fprintf(hash, "|%s|%s|%g|%s|%d,%d,%d,%d",
		cfg.Text, fontName, cfg.FontSize, cfg.Position,
		cfg.Color.R, cfg.Color.G, cfg.Color.B, cfg.Color.A)
	return fmt.Sprintf("%s%x", cachePrefix, hash.Sum(nil))
}

// SaveJob stores the job record; records live as long as cached results.
func (s *StorageService) SaveJob(ctx context.Context, job *models.StampJob) error {
	if !s.CacheEnabled() {
		return ErrCacheDisabled
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.redisClient.Set(ctx, jobPrefix+job.ID, data, s.cacheDuration).Err()
}

// GetJob returns nil when no record exists for id.
func (s *StorageService) GetJob(ctx context.Context, id string) (*models.StampJob, error) {
	if !s.CacheEnabled() {
		return nil, ErrCacheDisabled
	}
	data, err := s.redisClient.Get(ctx, jobPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	var job models.StampJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	if !s.CacheEnabled() {
		return nil, ErrCacheDisabled
	}
	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys": dbSize,
	}

	return stats, nil
}
