package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"aurora/cmd/fx/access_fx"
	"aurora/cmd/fx/account_fx"
	"aurora/cmd/fx/appointment_fx"
	"aurora/cmd/fx/config_fx"
	"aurora/cmd/fx/controllers_fx"
	"aurora/cmd/fx/db_fx"
	"aurora/cmd/fx/image_fx"
	"aurora/cmd/fx/logger_fx"
	"aurora/cmd/fx/product_fx"
	"aurora/cmd/fx/storage_fx"
	"aurora/internal/api"
	"aurora/internal/config"
	"aurora/internal/services"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		db_fx.Module,
		storage_fx.Module,
		access_fx.Module,
		account_fx.Module,
		product_fx.Module,
		image_fx.Module,
		appointment_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(BootstrapAdmin),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRouter(p api.RouteParams) *gin.Engine {
	return api.NewRouter(p)
}

// BootstrapAdmin makes sure the administrator exists before traffic arrives.
func BootstrapAdmin(lc fx.Lifecycle, cfg *config.Config, accounts services.AccountServiceInterface, log *zap.Logger) {
	if !cfg.Admin.EnsureOnStart {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			admin, err := accounts.EnsureAdmin(ctx)
			if err != nil {
				// a clash with an existing username must not keep the API down
				log.Error("ensure admin account", zap.Error(err))
				return nil
			}
			log.Info("admin account ready", zap.String("email", admin.Email))
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
