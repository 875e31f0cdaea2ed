package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/config"
	"github.com/sagarc03/schedsync/database"
	"github.com/sagarc03/schedsync/filesystem"
	"github.com/sagarc03/schedsync/memory"
	"github.com/sagarc03/schedsync/redis"
	"github.com/sagarc03/schedsync/s3"
)

// openStore builds the store selected by storage.type. The returned func
// releases whatever the backend holds open and is never nil on success.
func openStore(ctx context.Context, cfg *config.Config) (schedsync.ObjectStore, func(), error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		return memory.NewStore(), func() {}, nil

	case config.StorageFilesystem:
		if err := os.MkdirAll(cfg.Storage.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create storage directory: %w", err)
		}

		root, err := os.OpenRoot(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.NewFileStorage(root), func() { _ = root.Close() }, nil

	case config.StorageSQLite, config.StoragePostgres:
		store, closeDB, err := database.Open(ctx, cfg.Database.ConnectConfig(cfg.Storage.Type), cfg.Database.AutoMigrate)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return store, closeDB, nil

	case config.StorageS3:
		store, err := s3.Open(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("open s3: %w", err)
		}
		return store, func() {}, nil

	case config.StorageRedis:
		store, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
