package storage

import (
	"time"

	"github.com/phambaophuc/copyright-stamp/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
)

// StorageService holds the optional remote backends. Either client is nil
// when its settings are absent, and the methods using it report that.
type StorageService struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		bucket:        cfg.Supabase.BUCKET,
		cacheDuration: cfg.Storage.CacheDuration,
	}

	if cfg.Supabase.URL != "" {
		s.sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
	}

	if cfg.Redis.Addr != "" {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	return s, nil
}

func (s *StorageService) UploadsEnabled() bool {
	return s != nil && s.sbClient != nil
}

func (s *StorageService) CacheEnabled() bool {
	return s != nil && s.redisClient != nil
}

// Close releases the Redis connection pool.
func (s *StorageService) Close() error {
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}
