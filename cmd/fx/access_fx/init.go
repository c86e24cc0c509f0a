package access_fx

import (
	"go.uber.org/fx"

	"aurora/internal/access"
)

var Module = fx.Provide(access.NewGateway)
