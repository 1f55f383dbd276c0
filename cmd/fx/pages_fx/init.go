package pages_fx

import (
	"go.uber.org/fx"

	"freightline/internal/services"
)

var Module = fx.Provide(services.NewPageService)
