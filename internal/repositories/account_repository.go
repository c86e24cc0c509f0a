package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

// AccountRepository is the credential store. It persists accounts and
// enforces key uniqueness; business validation belongs to the service.
type AccountRepository interface {
	Insert(ctx context.Context, account *db_models.Account) error
	Update(ctx context.Context, account *db_models.Account) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	UpsertAdmin(ctx context.Context, account *db_models.Account) (*db_models.Account, error)

	FindById(ctx context.Context, id string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	FindByUsername(ctx context.Context, username string) (*db_models.Account, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Insert fails with utils.ErrDuplicateKey when email or username exists.
func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	err := a.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateKey
	}
	return err
}

func (a *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	err := a.db.WithContext(ctx).Save(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateKey
	}
	return err
}

func (a *accountRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Updates(fields)

	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateKey
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete removes the account and everything it owns.
func (a *accountRepository) Delete(ctx context.Context, id string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&db_models.AnalysisResult{}).Error; err != nil {
			return fmt.Errorf("delete analyses: %w", err)
		}
		if err := tx.Where("account_id = ?", id).Delete(&db_models.UploadedImage{}).Error; err != nil {
			return fmt.Errorf("delete images: %w", err)
		}
		if err := tx.Where("account_id = ?", id).Delete(&db_models.Appointment{}).Error; err != nil {
			return fmt.Errorf("delete appointments: %w", err)
		}

		result := tx.Delete(&db_models.Account{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}

// UpsertAdmin inserts account or, when its email already exists, forces the
// privilege flags on the existing row. One statement, so concurrent callers
// converge on a single row.
func (a *accountRepository) UpsertAdmin(ctx context.Context, account *db_models.Account) (*db_models.Account, error) {
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_staff":     true,
				"is_superuser": true,
				"is_active":    true,
				"role":         db_models.RoleAdmin,
			}),
		}).
		Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// the username belongs to a different account
		return nil, utils.ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}

	// On conflict the in-memory id is the one generated for the rejected
	// insert, so read the stored row back.
	stored, err := a.FindByEmail(ctx, account.Email)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("admin account %s vanished after upsert", account.Email)
	}
	return stored, nil
}

func (a *accountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	return a.findOne(ctx, "id = ?", id)
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return a.findOne(ctx, "email = ?", email)
}

func (a *accountRepository) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	return a.findOne(ctx, "username = ?", username)
}

func (a *accountRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := a.db.WithContext(ctx).
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// findOne returns (nil, nil) when no row matches.
func (a *accountRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).Where(query, args...).First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
