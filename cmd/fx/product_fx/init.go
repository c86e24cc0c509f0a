package product_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/repositories"
	"aurora/internal/services"
	"aurora/pkg/storage"
)

var Module = fx.Provide(
	provideProductRepo, provideProductService)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func provideProductService(productRepo repositories.ProductRepository, objects storage.ObjectStore, log *zap.Logger) services.ProductServiceInterface {
	return services.NewProductService(productRepo, objects, log)
}
