package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *db_models.Appointment) error
	Save(ctx context.Context, appointment *db_models.Appointment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*db_models.Appointment, error)
	// ListByAccount lists one account's appointments, or all when accountID is empty.
	ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]db_models.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *db_models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) Save(ctx context.Context, appointment *db_models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&db_models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*db_models.Appointment, error) {
	var appointment db_models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]db_models.Appointment, error) {
	var appointments []db_models.Appointment
	q := r.db.WithContext(ctx)
	if accountID != "" {
		q = q.Where("account_id = ?", accountID)
	}
	err := q.Order("scheduled_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
