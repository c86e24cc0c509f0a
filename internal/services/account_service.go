package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/models/db_models"
	"aurora/internal/models/request_models"
	"aurora/internal/models/response_models"
	"aurora/internal/repositories"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

const (
	msgRequired      = "This field is required."
	msgInvalidEmail  = "Enter a valid email address."
	msgEmailTaken    = "A user with this email already exists."
	msgUsernameTaken = "A user with that username already exists."
	noAnalysisYet    = "No analysis yet"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	RefreshToken(ctx context.Context, refresh string) (*response_models.RefreshResponse, error)
	EnsureAdmin(ctx context.Context) (*db_models.Account, error)

	GetAccount(ctx context.Context, caller access.Principal, id string) (*response_models.AccountResponse, error)
	ListAccounts(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, caller access.Principal, id string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	DeleteAccount(ctx context.Context, caller access.Principal, id string) error
}

// AccountService is the only place accounts are created and credentials minted.
type AccountService struct {
	accountRepo repositories.AccountRepository
	imageRepo   repositories.ImageRepositoryInterface
	objects     storage.ObjectStore
	tokens      *utils.TokenIssuer
	gateway     *access.Gateway
	admin       config.AdminConfig
	validate    *validator.Validate
	log         *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	imageRepo repositories.ImageRepositoryInterface,
	objects storage.ObjectStore,
	tokens *utils.TokenIssuer,
	gateway *access.Gateway,
	admin config.AdminConfig,
	log *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		imageRepo:   imageRepo,
		objects:     objects,
		tokens:      tokens,
		gateway:     gateway,
		admin:       admin,
		validate:    validator.New(),
		log:         log.Named("accounts"),
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	request.Email = strings.TrimSpace(request.Email)
	request.Username = strings.TrimSpace(request.Username)
	request.FirstName = strings.TrimSpace(request.FirstName)
	request.LastName = strings.TrimSpace(request.LastName)

	verr := utils.NewValidationError()
	switch {
	case request.Email == "":
		verr.Add("email", msgRequired)
	case a.validate.Var(request.Email, "email") != nil:
		verr.Add("email", msgInvalidEmail)
	}
	if request.Password == "" {
		verr.Add("password", msgRequired)
	}
	if request.Username == "" {
		verr.Add("username", msgRequired)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := a.checkUnique(ctx, request.Email, request.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		Email:        request.Email,
		Username:     request.Username,
		PasswordHash: hashedPassword,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		IsActive:     true,
		Role:         db_models.RoleUser,
		SkinType:     datatypes.JSONSlice[string]{},
		SkinConcerns: datatypes.JSONSlice[string]{},
	}
	applyOptionalProfile(account, request)

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			// lost a race with a concurrent registration
			if uniqueErr := a.checkUnique(ctx, request.Email, request.Username); uniqueErr != nil {
				return nil, uniqueErr
			}
			return nil, utils.NewConflictError("email", msgEmailTaken)
		}
		return nil, fmt.Errorf("%w: insert account: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("account registered", zap.String("account_id", account.ID.String()))

	return a.issue(account)
}

// checkUnique reports email conflicts before username conflicts.
func (a *AccountService) checkUnique(ctx context.Context, email, username string) error {
	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return utils.NewConflictError("email", msgEmailTaken)
	}

	existing, err = a.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return utils.NewConflictError("username", msgUsernameTaken)
	}
	return nil
}

// applyOptionalProfile copies optional fields only when they carry a value,
// leaving the account defaults in place otherwise.
func applyOptionalProfile(account *db_models.Account, request request_models.RegisterRequest) {
	if request.Age != nil && *request.Age > 0 {
		account.Age = lo.ToPtr(*request.Age)
	}
	if request.Sex != nil {
		if sex := strings.TrimSpace(*request.Sex); sex != "" {
			account.Sex = &sex
		}
	}
	if request.Country != nil {
		if country := strings.TrimSpace(*request.Country); country != "" {
			account.Country = &country
		}
	}
	if skinType := cleanList(request.SkinType); len(skinType) > 0 {
		account.SkinType = skinType
	}
	if concerns := cleanList(request.SkinConcerns); len(concerns) > 0 {
		account.SkinConcerns = concerns
	}
}

func cleanList(items []string) []string {
	return lo.Compact(lo.Map(items, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	if request.Email == "" || request.Password == "" {
		verr := utils.NewValidationError()
		if request.Email == "" {
			verr.Add("email", msgRequired)
		}
		if request.Password == "" {
			verr.Add("password", msgRequired)
		}
		return nil, verr
	}

	if a.isAdminPair(request.Email, request.Password) {
		admin, err := a.EnsureAdmin(ctx)
		if err != nil {
			return nil, err
		}
		a.log.Warn("admin bootstrap login", zap.String("account_id", admin.ID.String()))
		return a.issue(admin)
	}

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if !account.IsPrivileged() || !account.IsActive {
		return nil, utils.ErrAccountNotAuthorized
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.issue(account)
}

func (a *AccountService) isAdminPair(email, password string) bool {
	if !a.admin.LoginBootstrap {
		return false
	}
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(a.admin.Email)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password)) == 1
	return emailMatch && passwordMatch
}

func (a *AccountService) RefreshToken(ctx context.Context, refresh string) (*response_models.RefreshResponse, error) {
	if strings.TrimSpace(refresh) == "" {
		verr := utils.NewValidationError()
		verr.Add("refresh", msgRequired)
		return nil, verr
	}

	access, err := a.tokens.RefreshAccess(refresh)
	if err != nil {
		return nil, err
	}
	return &response_models.RefreshResponse{Access: access}, nil
}

// EnsureAdmin creates the bootstrap administrator or repairs its flags. It is
// one atomic upsert and can run any number of times, concurrently. When the
// configured username already belongs to a different account the admin is
// created under a derived username instead, so the admin email always ends
// up with a usable account.
func (a *AccountService) EnsureAdmin(ctx context.Context) (*db_models.Account, error) {
	hashedPassword, err := utils.HashPassword(a.admin.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin, err := a.accountRepo.UpsertAdmin(ctx, a.adminAccount(a.admin.Username, hashedPassword))
	if errors.Is(err, utils.ErrDuplicateKey) {
		// the email is not taken (that would have been an update), so the
		// clash is on the username
		username := fallbackAdminUsername(a.admin.Username)
		a.log.Warn("admin username taken by another account",
			zap.String("username", a.admin.Username),
			zap.String("fallback", username))
		admin, err = a.accountRepo.UpsertAdmin(ctx, a.adminAccount(username, hashedPassword))
	}
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, utils.NewConflictError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("%w: upsert admin: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("admin account ensured", zap.String("email", admin.Email))
	return admin, nil
}

func (a *AccountService) adminAccount(username, passwordHash string) *db_models.Account {
	return &db_models.Account{
		Email:        a.admin.Email,
		Username:     username,
		PasswordHash: passwordHash,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
		Role:         db_models.RoleAdmin,
		SkinType:     datatypes.JSONSlice[string]{},
		SkinConcerns: datatypes.JSONSlice[string]{},
	}
}

// fallbackAdminUsername derives "<username>-<8 hex>".
func fallbackAdminUsername(username string) string {
	return username + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (a *AccountService) issue(account *db_models.Account) (*response_models.AuthResponse, error) {
	pair, err := a.tokens.IssuePair(utils.Subject{
		ID:          account.ID,
		Email:       account.Email,
		Role:        account.Role,
		IsStaff:     account.IsStaff,
		IsSuperuser: account.IsSuperuser,
	})
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &response_models.AuthResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		IsAdmin: account.IsStaff,
		User:    response_models.NewAccountPublic(account),
	}, nil
}

// denied picks 401 for anonymous callers and 403 for everyone else.
func denied(caller access.Principal) error {
	if !caller.Authenticated() {
		return utils.ErrUnauthenticated
	}
	return utils.ErrForbidden
}

func parseID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (a *AccountService) GetAccount(ctx context.Context, caller access.Principal, id string) (*response_models.AccountResponse, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, utils.ErrNotFound
	}
	if !a.gateway.Authorize(caller, access.ResourceAccount, access.ActionRead, id) {
		return nil, denied(caller)
	}

	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrNotFound
	}

	out, err := a.withLastCondition(ctx, []db_models.Account{*account})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ListAccounts returns every account to staff and only the caller's own
// account to everyone else.
func (a *AccountService) ListAccounts(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.AccountResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	var accounts []db_models.Account
	switch {
	case a.gateway.Authorize(caller, access.ResourceAccount, access.ActionRead, ""):
		list, err := a.accountRepo.List(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		accounts = list
	case a.gateway.AuthorizeOwn(caller, access.ResourceAccount, access.ActionRead):
		account, err := a.accountRepo.FindById(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if account != nil && page == 1 {
			accounts = append(accounts, *account)
		}
	default:
		return nil, denied(caller)
	}

	return a.withLastCondition(ctx, accounts)
}

func (a *AccountService) withLastCondition(ctx context.Context, accounts []db_models.Account) ([]response_models.AccountResponse, error) {
	ids := lo.Map(accounts, func(acc db_models.Account, _ int) string { return acc.ID.String() })
	latest, err := a.imageRepo.LatestConditions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp := response_models.NewAccountResponse(&accounts[i])
		resp.LastSkinCondition = lo.ValueOr(latest, resp.ID, noAnalysisYet)
		out = append(out, resp)
	}
	return out, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, caller access.Principal, id string, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, utils.ErrNotFound
	}
	if !a.gateway.Authorize(caller, access.ResourceAccount, access.ActionWrite, id) {
		return nil, denied(caller)
	}

	fields := map[string]interface{}{}
	verr := utils.NewValidationError()

	if request.Username != nil {
		username := strings.TrimSpace(*request.Username)
		if username == "" {
			verr.Add("username", msgRequired)
		} else {
			fields["username"] = username
		}
	}
	if request.Password != nil {
		if *request.Password == "" {
			verr.Add("password", msgRequired)
		} else {
			hashed, err := utils.HashPassword(*request.Password)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			fields["password_hash"] = hashed
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if request.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*request.LastName)
	}
	if request.Age != nil {
		fields["age"] = *request.Age
	}
	if request.Sex != nil {
		fields["sex"] = strings.TrimSpace(*request.Sex)
	}
	if request.Country != nil {
		fields["country"] = strings.TrimSpace(*request.Country)
	}
	if request.SkinType != nil {
		fields["skin_type"] = datatypes.JSONSlice[string](cleanList(*request.SkinType))
	}
	if request.SkinConcerns != nil {
		fields["skin_concerns"] = datatypes.JSONSlice[string](cleanList(*request.SkinConcerns))
	}

	if len(fields) > 0 {
		if err := a.accountRepo.UpdateFields(ctx, id, fields); err != nil {
			switch {
			case errors.Is(err, utils.ErrDuplicateKey):
				return nil, utils.NewConflictError("username", msgUsernameTaken)
			case errors.Is(err, utils.ErrNotFound):
				return nil, err
			default:
				return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
			}
		}
	}

	return a.GetAccount(ctx, caller, id)
}

// DeleteAccount removes the caller's own account together with its
// appointments, images and analyses.
func (a *AccountService) DeleteAccount(ctx context.Context, caller access.Principal, id string) error {
	id, ok := parseID(id)
	if !ok {
		return utils.ErrNotFound
	}
	if !a.gateway.Authorize(caller, access.ResourceAccount, access.ActionDelete, id) {
		return denied(caller)
	}

	keys, err := a.imageRepo.StorageKeys(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := a.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	for _, key := range keys {
		if err := a.objects.Delete(ctx, key); err != nil {
			// the rows are gone; an orphaned object is only wasted space
			a.log.Warn("delete stored image", zap.String("key", key), zap.Error(err))
		}
	}

	a.log.Info("account deleted", zap.String("account_id", id))
	return nil
}
