package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/infra/dbtest"
	"aurora/internal/repositories"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

// pngBytes is the smallest prefix recognised as a PNG image.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testEnv struct {
	db           *gorm.DB
	store        *storage.LocalStore
	tokens       *utils.TokenIssuer
	admin        config.AdminConfig
	accounts     *AccountService
	products     *ProductService
	images       *ImageService
	appointments *AppointmentService
}

func testAdminConfig() config.AdminConfig {
	return config.AdminConfig{
		Email:          "admin@skincare.com",
		Password:       "admin123",
		Username:       "admin",
		LoginBootstrap: true,
		BearerToken:    "admin-token",
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.AdminConfig)) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	store, err := storage.NewLocalStore(t.TempDir(), "/media/")
	require.NoError(t, err)

	gateway, err := access.NewGateway()
	require.NoError(t, err)

	admin := testAdminConfig()
	for _, m := range mutate {
		m(&admin)
	}

	tokens := utils.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
	log := zap.NewNop()

	accountRepo := repositories.NewAccountRepository(db)
	imageRepo := repositories.NewImageRepository(db)
	productRepo := repositories.NewProductRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)

	return &testEnv{
		db:           db,
		store:        store,
		tokens:       tokens,
		admin:        admin,
		accounts:     NewAccountService(accountRepo, imageRepo, store, tokens, gateway, admin, log),
		products:     NewProductService(productRepo, store, log),
		images:       NewImageService(imageRepo, productRepo, store, gateway, config.StorageConfig{MaxUploadBytes: 1 << 10}, log),
		appointments: NewAppointmentService(appointmentRepo, gateway, log),
	}
}

// principalOf mirrors what the authentication middleware builds from a token.
func principalOf(t *testing.T, tokens *utils.TokenIssuer, token string) access.Principal {
	t.Helper()

	claims, err := tokens.Validate(token, utils.TokenTypeAccess)
	require.NoError(t, err)
	return access.Principal{
		UserID:      claims.UserID,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
	}
}

func requireFieldError(t *testing.T, err error, field string) *utils.ValidationError {
	t.Helper()

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, field)
	return verr
}
