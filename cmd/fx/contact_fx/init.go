package contact_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"freightline/internal/i18n"
	"freightline/internal/infra"
	"freightline/internal/services"
)

var Module = fx.Provide(provideContactService)

func provideContactService(relay services.MailRelay, translator i18n.Translator, cfg infra.Config, log *zap.Logger) services.ContactServiceInterface {
	return services.NewContactService(relay, translator, cfg.ContactRecipients, log.Named("contact"))
}
