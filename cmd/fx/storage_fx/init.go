package storage_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"aurora/internal/config"
	"aurora/pkg/storage"
)

var Module = fx.Provide(provideObjectStore)

func provideObjectStore(cfg config.StorageConfig, log *zap.Logger) (storage.ObjectStore, error) {
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	log.Info("object storage ready", zap.String("driver", cfg.Driver))
	return store, nil
}
