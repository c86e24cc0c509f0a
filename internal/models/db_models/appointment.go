package db_models

import "github.com/google/uuid"

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "REQUESTED"
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentRequested, AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type Appointment struct {
	BaseModel
	AccountID   uuid.UUID         `gorm:"type:uuid;index;not null"`
	ScheduledAt int64             `gorm:"index;not null"` // unix seconds
	Status      AppointmentStatus `gorm:"type:varchar(12);not null;default:'REQUESTED'"`
	Reason      string
	Notes       string `gorm:"type:text"`
}
