package service

import (
	"testing"
	"time"

	"freelance_hub_backend/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.StorageConfig{Type: "local", LocalPath: t.TempDir(), MaxUploadMB: 1}
	return &StorageService{Provider: &LocalStorageProvider{Config: cfg}, Config: cfg}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
