package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/photovault/service/internal/config"
	"github.com/photovault/service/internal/db"
	"github.com/photovault/service/internal/photo"
)

// openStore connects the configured metadata backend. The returned func
// releases its connections.
func openStore(ctx context.Context, log *zap.Logger, cfg *config.Config) (photo.Store, func(), error) {
	switch cfg.MetadataBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(log, cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return photo.NewRepository(pool), pool.Close, nil

	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, log, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Warn("mongo disconnect", zap.Error(err))
			}
		}
		repo := photo.NewMongoRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, nil, err
		}
		return repo, disconnect, nil

	case config.BackendMemory:
		log.Warn("using in-memory metadata store; data is lost on restart")
		return photo.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.MetadataBackend)
}
