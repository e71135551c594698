package storage

import (
	"context"
	"fmt"

	"github.com/vidinsight/backend/internal/config"
	"github.com/vidinsight/backend/internal/db"
)

// Open constructs the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverFile, "":
		return NewFile(cfg.Dir)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool), nil
	case config.DriverRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.DriverS3:
		return OpenS3(ctx, S3Options{
			Bucket:   cfg.ObjectStore.Bucket,
			Region:   cfg.ObjectStore.Region,
			Endpoint: cfg.ObjectStore.Endpoint,
			Prefix:   cfg.ObjectStore.Prefix,
		})
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
