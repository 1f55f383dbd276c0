package i18n_fx

import (
	"go.uber.org/fx"

	"freightline/internal/i18n"
	"freightline/internal/infra"
)

var Module = fx.Provide(
	provideCatalog,
	func(c *i18n.Catalog) i18n.Translator { return c },
)

func provideCatalog(cfg infra.Config) (*i18n.Catalog, error) {
	return i18n.Load(cfg.DefaultLanguage)
}
