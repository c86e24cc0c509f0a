package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/repositories"
	"aurora/internal/services"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenIssuer)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(cfg config.JWTConfig) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.Secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	imageRepo repositories.ImageRepositoryInterface,
	objects storage.ObjectStore,
	tokens *utils.TokenIssuer,
	gateway *access.Gateway,
	admin config.AdminConfig,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, imageRepo, objects, tokens, gateway, admin, log)
}
