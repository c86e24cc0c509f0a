package request_models

import "time"

type CreateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Reason      string     `json:"reason"`
	Notes       string     `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status"`
	Reason      *string    `json:"reason"`
	Notes       *string    `json:"notes"`
}
