// aurora-admin runs one-off operator tasks against the configured database:
// schema migration, the administrator bootstrap and the starter catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/infra"
	"aurora/internal/repositories"
	"aurora/internal/services"
	"aurora/pkg/logger"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// runtime is what every subcommand needs once configuration is loaded.
type runtime struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.Logger
}

func (r *runtime) close() {
	if r.db != nil {
		infra.CloseDatabase(r.db, r.log)
	}
	_ = r.log.Sync()
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "aurora-admin",
		Short:         "Operator tasks for the aurora backend.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, _ := logger.NewLogger(cfg.LogLevel, cfg.GinMode)

			db, err := infra.InitDatabase(cfg.Database, log)
			if err != nil {
				return err
			}
			if err := infra.Migrate(db); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}

			rt.cfg, rt.db, rt.log = cfg, db, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
	}

	cmd.PersistentFlags().String("db-driver", "", "database driver (postgres or sqlite), overrides DB_DRIVER")
	cmd.PersistentFlags().String("sqlite-path", "", "SQLite DSN, overrides SQLITE_PATH")
	bindFlag(v, "DB_DRIVER", cmd, "db-driver")
	bindFlag(v, "SQLITE_PATH", cmd, "sqlite-path")

	cmd.AddCommand(newMigrateCmd(rt))
	cmd.AddCommand(newEnsureAdminCmd(rt))
	cmd.AddCommand(newSeedProductsCmd(rt))

	return cmd
}

// bindFlag maps a persistent flag onto a config key. An unset flag leaves
// the environment value in charge.
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	cobra.CheckErr(v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)))
}

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPreRunE already migrated
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}

func newEnsureAdminCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-admin",
		Short: "Create the administrator account or restore its privileges",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := newAccountService(cmd.Context(), rt)
			if err != nil {
				return err
			}

			admin, err := accounts.EnsureAdmin(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Admin user ready: %s (%s)\n", admin.Email, admin.Username)
			return nil
		},
	}
}

func newSeedProductsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-products",
		Short: "Insert the starter product catalog, skipping existing names",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.New(cmd.Context(), rt.cfg.Storage)
			if err != nil {
				return err
			}
			products := services.NewProductService(repositories.NewProductRepository(rt.db), store, rt.log)

			added, err := products.SeedProducts(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d products.\n", added)
			return nil
		},
	}
}

func newAccountService(ctx context.Context, rt *runtime) (*services.AccountService, error) {
	store, err := storage.New(ctx, rt.cfg.Storage)
	if err != nil {
		return nil, err
	}
	gateway, err := access.NewGateway()
	if err != nil {
		return nil, err
	}
	tokens := utils.NewTokenIssuer(rt.cfg.JWT.Secret, rt.cfg.JWT.AccessTokenTTL, rt.cfg.JWT.RefreshTokenTTL)

	return services.NewAccountService(
		repositories.NewAccountRepository(rt.db),
		repositories.NewImageRepository(rt.db),
		store,
		tokens,
		gateway,
		rt.cfg.Admin,
		rt.log,
	), nil
}
