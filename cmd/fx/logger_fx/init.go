package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"aurora/internal/config"
	"aurora/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	log, _ := logger.NewLogger(cfg.LogLevel, cfg.GinMode)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stdout sync fails on some platforms; nothing useful to do about it
			_ = log.Sync()
			return nil
		},
	})

	return log
}
