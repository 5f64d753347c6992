package storage

import "errors"

var (
	ErrUploadsDisabled = errors.New("supabase storage not configured")
	ErrCacheDisabled   = errors.New("redis cache not configured")
)
