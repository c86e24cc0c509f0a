package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *db_models.Product) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, product *db_models.Product) error
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*db_models.Product, error)
	List(ctx context.Context, category string, page, pageSize int) ([]db_models.Product, error)
	FindByNames(ctx context.Context, names []string) ([]db_models.Product, error)
	ExistingNames(ctx context.Context, names []string) ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *db_models.Product) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, utils.ErrDuplicateKey
		}
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *db_models.Product) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(product).Select("*").Omit("created_at").Updates(product)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return utils.ErrDuplicateKey
			}
			return fmt.Errorf("failed to update product: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return utils.ErrNotFound
		}

		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&db_models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers return a nil model and nil error when no rows match.
// ────────────────────────────────────────────────────────────────

func (r *productRepository) GetByID(ctx context.Context, id string) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, category string, page, pageSize int) ([]db_models.Product, error) {
	var products []db_models.Product
	offset := (page - 1) * pageSize

	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}

	err := q.Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByNames(ctx context.Context, names []string) ([]db_models.Product, error) {
	if len(names) == 0 {
		return []db_models.Product{}, nil
	}

	var products []db_models.Product
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ExistingNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var existing []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Product{}).
		Where("name IN ?", names).
		Pluck("name", &existing).Error
	return existing, err
}
