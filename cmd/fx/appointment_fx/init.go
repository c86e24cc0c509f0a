package appointment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/access"
	"aurora/internal/repositories"
	"aurora/internal/services"
)

var Module = fx.Provide(
	provideAppointmentRepo, provideAppointmentService)

func provideAppointmentRepo(db *gorm.DB) repositories.AppointmentRepository {
	return repositories.NewAppointmentRepository(db)
}

func provideAppointmentService(appointmentRepo repositories.AppointmentRepository, gateway *access.Gateway, log *zap.Logger) services.AppointmentServiceInterface {
	return services.NewAppointmentService(appointmentRepo, gateway, log)
}
