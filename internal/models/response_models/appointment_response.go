package response_models

import (
	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

type AppointmentResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	ScheduledAt string `json:"scheduled_at"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}

func NewAppointmentResponse(a *db_models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID.String(),
		UserID:      a.AccountID.String(),
		ScheduledAt: utils.FormatUnixRFC3339(a.ScheduledAt),
		Status:      string(a.Status),
		Reason:      a.Reason,
		Notes:       a.Notes,
		CreatedAt:   utils.FormatUnixRFC3339(a.CreatedAt),
	}
}
