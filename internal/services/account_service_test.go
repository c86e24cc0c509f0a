package services

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/models/db_models"
	"aurora/internal/models/request_models"
	"aurora/internal/models/response_models"
	"aurora/pkg/utils"
)

func registerRequest(email, username string) request_models.RegisterRequest {
	return request_models.RegisterRequest{
		Email:    email,
		Username: username,
		Password: "s3cret-pass",
	}
}

func TestAccountService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := registerRequest("  jane@example.com ", " jane ")
	req.FirstName = " Jane "
	req.Age = lo.ToPtr(29)
	req.Country = lo.ToPtr("")
	req.SkinConcerns = []string{" acne ", ""}

	resp, err := env.accounts.Register(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.False(t, resp.IsAdmin)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "jane", resp.User.Username)
	assert.Equal(t, "Jane", resp.User.FirstName)

	var stored db_models.Account
	require.NoError(t, env.db.First(&stored, "email = ?", "jane@example.com").Error)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(stored.PasswordHash, "s3cret-pass"))
	assert.Equal(t, 29, *stored.Age)
	assert.Nil(t, stored.Country, "empty optional fields keep their default")
	assert.Equal(t, []string{"acne"}, []string(stored.SkinConcerns))
	assert.Empty(t, stored.SkinType)
	assert.False(t, stored.IsStaff)
	assert.Equal(t, db_models.RoleUser, stored.Role)

	claims, err := env.tokens.Validate(resp.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.String(), claims.UserID)
}

func TestAccountService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), request_models.RegisterRequest{Email: "not-an-email"})

	verr := requireFieldError(t, err, "email")
	assert.Equal(t, []string{msgInvalidEmail}, verr.Fields["email"])
	assert.Equal(t, []string{msgRequired}, verr.Fields["password"])
	assert.Equal(t, []string{msgRequired}, verr.Fields["username"])
	assert.False(t, verr.Conflict)

	_, err = env.accounts.Register(context.Background(), request_models.RegisterRequest{Email: "   ", Username: "u", Password: "p"})
	verr = requireFieldError(t, err, "email")
	assert.Equal(t, []string{msgRequired}, verr.Fields["email"])

	_, err = env.accounts.Register(context.Background(), request_models.RegisterRequest{Email: "bad@", Username: "u", Password: "p"})
	requireFieldError(t, err, "email")

	var count int64
	require.NoError(t, env.db.Model(&db_models.Account{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "nothing is stored when validation fails")
}

func TestAccountService_RegisterConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)

	// email is reported even when the username clashes too
	_, err = env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	verr := requireFieldError(t, err, "email")
	assert.True(t, verr.Conflict)
	assert.Equal(t, []string{msgEmailTaken}, verr.Fields["email"])
	assert.NotContains(t, verr.Fields, "username")

	_, err = env.accounts.Register(ctx, registerRequest("other@example.com", "jane"))
	verr = requireFieldError(t, err, "username")
	assert.Equal(t, []string{msgUsernameTaken}, verr.Fields["username"])

	var count int64
	require.NoError(t, env.db.Model(&db_models.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAccountService_LoginRejectsRegularAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)

	_, err = env.accounts.Login(ctx, request_models.LoginRequest{Email: "jane@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrAccountNotAuthorized)

	_, err = env.accounts.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	_, err = env.accounts.Login(ctx, request_models.LoginRequest{})
	requireFieldError(t, err, "email")
}

func TestAccountService_LoginStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, registerRequest("staff@example.com", "staff"))
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&db_models.Account{}).
		Where("email = ?", "staff@example.com").
		Update("is_staff", true).Error)

	_, err = env.accounts.Login(ctx, request_models.LoginRequest{Email: "staff@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	resp, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: "staff@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)

	require.NoError(t, env.db.Model(&db_models.Account{}).
		Where("email = ?", "staff@example.com").
		Update("is_active", false).Error)
	_, err = env.accounts.Login(ctx, request_models.LoginRequest{Email: "staff@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, utils.ErrAccountNotAuthorized)
}

func TestAccountService_LoginBootstrapsAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, env.admin.Email, resp.User.Email)

	claims, err := env.tokens.Validate(resp.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, claims.IsStaff)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, db_models.RoleAdmin, claims.Role)

	// the second login reuses the same account
	again, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
}

func TestAccountService_LoginWithoutBootstrap(t *testing.T) {
	env := newTestEnv(t, func(c *config.AdminConfig) { c.LoginBootstrap = false })
	ctx := context.Background()

	_, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	_, err = env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)

	resp, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
}

func TestAccountService_EnsureAdminRepairsFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&db_models.Account{}).
		Where("id = ?", first.ID).
		Updates(map[string]interface{}{"is_staff": false, "is_superuser": false, "is_active": false}).Error)

	second, err := env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsStaff)
	assert.True(t, second.IsSuperuser)
	assert.True(t, second.IsActive)
}

func TestAccountService_EnsureAdminUsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	squatter, err := env.accounts.Register(ctx, registerRequest("someone@example.com", env.admin.Username))
	require.NoError(t, err)

	admin, err := env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, env.admin.Email, admin.Email)
	assert.Regexp(t, `^admin-[0-9a-f]{8}$`, admin.Username)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.NotEqual(t, squatter.User.ID, admin.ID.String())

	// later runs find the admin by email and keep the derived username
	again, err := env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, admin.Username, again.Username)

	var other db_models.Account
	require.NoError(t, env.db.First(&other, "email = ?", "someone@example.com").Error)
	assert.Equal(t, env.admin.Username, other.Username)
	assert.False(t, other.IsStaff)
}

func TestAccountService_LoginBootstrapWithUsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, registerRequest("squatter@example.com", env.admin.Username))
	require.NoError(t, err)

	resp, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, env.admin.Email, resp.User.Email)
	assert.NotEqual(t, env.admin.Username, resp.User.Username)
}

func TestAccountService_LoginBootstrapRepairsFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, registerRequest(env.admin.Email, env.admin.Username))
	require.NoError(t, err)

	resp, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)

	var stored db_models.Account
	require.NoError(t, env.db.First(&stored, "email = ?", env.admin.Email).Error)
	assert.Equal(t, resp.User.ID, stored.ID.String())
	assert.True(t, stored.IsStaff)
	assert.True(t, stored.IsSuperuser)
	assert.True(t, stored.IsActive)
	assert.Equal(t, db_models.RoleAdmin, stored.Role)
}

func TestAccountService_WrongPasswordKeepsHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.accounts.EnsureAdmin(ctx)
	require.NoError(t, err)

	_, err = env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: "not-the-password"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	var stored db_models.Account
	require.NoError(t, env.db.First(&stored, "id = ?", admin.ID).Error)
	assert.Equal(t, admin.PasswordHash, stored.PasswordHash)
	assert.Error(t, utils.ComparePasswords(stored.PasswordHash, "not-the-password"))
}

func TestAccountService_EnsureAdminConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const workers = 6
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			admin, err := env.accounts.EnsureAdmin(ctx)
			errs[i] = err
			if admin != nil {
				ids[i] = admin.ID.String()
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, lo.Uniq(ids), 1)

	var count int64
	require.NoError(t, env.db.Model(&db_models.Account{}).Where("email = ?", env.admin.Email).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAccountService_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)

	refreshed, err := env.accounts.RefreshToken(ctx, resp.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)

	_, err = env.accounts.RefreshToken(ctx, resp.Access)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	_, err = env.accounts.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	_, err = env.accounts.RefreshToken(ctx, "")
	requireFieldError(t, err, "refresh")
}

func TestAccountService_ProfileOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jane, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)
	bob, err := env.accounts.Register(ctx, registerRequest("bob@example.com", "bob"))
	require.NoError(t, err)

	janeP := principalOf(t, env.tokens, jane.Access)

	own, err := env.accounts.GetAccount(ctx, janeP, jane.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", own.Username)
	assert.Equal(t, noAnalysisYet, own.LastSkinCondition)

	_, err = env.accounts.GetAccount(ctx, janeP, bob.User.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = env.accounts.GetAccount(ctx, access.Principal{}, bob.User.ID)
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = env.accounts.UpdateProfile(ctx, janeP, bob.User.ID, request_models.UpdateProfileRequest{FirstName: lo.ToPtr("Hacked")})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	assert.ErrorIs(t, env.accounts.DeleteAccount(ctx, janeP, bob.User.ID), utils.ErrForbidden)

	admin, err := env.accounts.Login(ctx, request_models.LoginRequest{Email: env.admin.Email, Password: env.admin.Password})
	require.NoError(t, err)
	staff := principalOf(t, env.tokens, admin.Access)

	viewed, err := env.accounts.GetAccount(ctx, staff, bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", viewed.Username)

	// staff may look but not delete
	assert.ErrorIs(t, env.accounts.DeleteAccount(ctx, staff, bob.User.ID), utils.ErrForbidden)
}

func TestAccountService_ListAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jane, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)
	_, err = env.accounts.Register(ctx, registerRequest("bob@example.com", "bob"))
	require.NoError(t, err)

	janeP := principalOf(t, env.tokens, jane.Access)
	image, err := env.images.Upload(ctx, janeP, pngBytes)
	require.NoError(t, err)
	_, err = env.images.Analyze(ctx, janeP, image.ID, []byte(`{"condition":"Acne","confidence":0.9,"recommendation_type":"products"}`))
	require.NoError(t, err)

	own, err := env.accounts.ListAccounts(ctx, janeP, 1, 20)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Acne", own[0].LastSkinCondition)

	all, err := env.accounts.ListAccounts(ctx, access.Principal{AdminChannel: true}, 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	conditions := lo.SliceToMap(all, func(a response_models.AccountResponse) (string, string) {
		return a.Username, a.LastSkinCondition
	})
	assert.Equal(t, map[string]string{"jane": "Acne", "bob": noAnalysisYet}, conditions)

	_, err = env.accounts.ListAccounts(ctx, access.Principal{}, 1, 20)
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = env.accounts.ListAccounts(ctx, janeP, 0, 20)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jane, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)
	_, err = env.accounts.Register(ctx, registerRequest("bob@example.com", "bob"))
	require.NoError(t, err)
	janeP := principalOf(t, env.tokens, jane.Access)

	updated, err := env.accounts.UpdateProfile(ctx, janeP, jane.User.ID, request_models.UpdateProfileRequest{
		FirstName: lo.ToPtr("Janet"),
		SkinType:  &[]string{"oily", " combination "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, []string{"oily", "combination"}, updated.SkinType)

	_, err = env.accounts.UpdateProfile(ctx, janeP, jane.User.ID, request_models.UpdateProfileRequest{Username: lo.ToPtr("bob")})
	verr := requireFieldError(t, err, "username")
	assert.True(t, verr.Conflict)

	_, err = env.accounts.UpdateProfile(ctx, janeP, jane.User.ID, request_models.UpdateProfileRequest{Password: lo.ToPtr("")})
	requireFieldError(t, err, "password")
}

func TestAccountService_DeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jane, err := env.accounts.Register(ctx, registerRequest("jane@example.com", "jane"))
	require.NoError(t, err)
	janeP := principalOf(t, env.tokens, jane.Access)

	_, err = env.images.Upload(ctx, janeP, pngBytes)
	require.NoError(t, err)
	_, err = env.appointments.CreateAppointment(ctx, janeP, newAppointmentRequest())
	require.NoError(t, err)

	require.NoError(t, env.accounts.DeleteAccount(ctx, janeP, jane.User.ID))

	for _, model := range []interface{}{&db_models.Account{}, &db_models.UploadedImage{}, &db_models.Appointment{}} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	assert.ErrorIs(t, env.accounts.DeleteAccount(ctx, janeP, jane.User.ID), utils.ErrNotFound)
}
