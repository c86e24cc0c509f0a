package config_fx

import (
	"go.uber.org/fx"

	"aurora/internal/config"
)

// Module loads the configuration once and hands out the sections
// individually so consumers depend only on what they use.
var Module = fx.Provide(
	config.Load,
	provideDatabaseConfig,
	provideJWTConfig,
	provideAdminConfig,
	provideStorageConfig,
)

func provideDatabaseConfig(cfg *config.Config) config.DatabaseConfig {
	return cfg.Database
}

func provideJWTConfig(cfg *config.Config) config.JWTConfig {
	return cfg.JWT
}

func provideAdminConfig(cfg *config.Config) config.AdminConfig {
	return cfg.Admin
}

func provideStorageConfig(cfg *config.Config) config.StorageConfig {
	return cfg.Storage
}
