package image_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/repositories"
	"aurora/internal/services"
	"aurora/pkg/storage"
)

var Module = fx.Provide(
	provideImageRepo, provideImageService)

func provideImageRepo(db *gorm.DB) repositories.ImageRepositoryInterface {
	return repositories.NewImageRepository(db)
}

func provideImageService(
	imageRepo repositories.ImageRepositoryInterface,
	productRepo repositories.ProductRepository,
	objects storage.ObjectStore,
	gateway *access.Gateway,
	cfg config.StorageConfig,
	log *zap.Logger,
) services.ImageServiceInterface {
	return services.NewImageService(imageRepo, productRepo, objects, gateway, cfg, log)
}
