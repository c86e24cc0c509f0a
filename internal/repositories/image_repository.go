package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

type ImageRepositoryInterface interface {
	CreateImage(ctx context.Context, image *db_models.UploadedImage) error
	GetImage(ctx context.Context, id string) (*db_models.UploadedImage, error)
	ListImages(ctx context.Context, accountID string, page, pageSize int) ([]db_models.UploadedImage, error)
	DeleteImage(ctx context.Context, id string) error
	StorageKeys(ctx context.Context, accountID string) ([]string, error)

	CreateAnalysis(ctx context.Context, analysis *db_models.AnalysisResult) error
	LatestConditions(ctx context.Context, accountIDs []string) (map[string]string, error)
}

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) CreateImage(ctx context.Context, image *db_models.UploadedImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ImageRepository) GetImage(ctx context.Context, id string) (*db_models.UploadedImage, error) {
	var image db_models.UploadedImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// ListImages lists the images of one account, or of everyone when accountID is empty.
func (r *ImageRepository) ListImages(ctx context.Context, accountID string, page, pageSize int) ([]db_models.UploadedImage, error) {
	var images []db_models.UploadedImage
	q := r.db.WithContext(ctx)
	if accountID != "" {
		q = q.Where("account_id = ?", accountID)
	}
	err := q.Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *ImageRepository) DeleteImage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&db_models.AnalysisResult{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&db_models.UploadedImage{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}

func (r *ImageRepository) StorageKeys(ctx context.Context, accountID string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&db_models.UploadedImage{}).
		Where("account_id = ?", accountID).
		Pluck("storage_key", &keys).Error
	return keys, err
}

func (r *ImageRepository) CreateAnalysis(ctx context.Context, analysis *db_models.AnalysisResult) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// LatestConditions maps account id to the condition of its most recent analysis.
// Accounts without any analysis are absent from the map.
func (r *ImageRepository) LatestConditions(ctx context.Context, accountIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}

	var rows []db_models.AnalysisResult
	err := r.db.WithContext(ctx).
		Select("account_id", "condition", "created_at").
		Where("account_id IN ?", accountIDs).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		key := row.AccountID.String()
		if _, seen := out[key]; !seen {
			out[key] = row.Condition
		}
	}
	return out, nil
}
