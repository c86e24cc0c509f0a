package controllers_fx

import (
	"go.uber.org/fx"

	"aurora/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewImageController),
	fx.Provide(controllers.NewAppointmentController),
	fx.Provide(controllers.NewHealthController))
