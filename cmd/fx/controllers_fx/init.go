package controllers_fx

import (
	"go.uber.org/fx"

	"freightline/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewQuoteController),
	fx.Provide(controllers.NewContactController),
	fx.Provide(controllers.NewPagesController))
