package quote_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"freightline/internal/i18n"
	"freightline/internal/infra"
	"freightline/internal/quote"
	"freightline/internal/services"
	mem "freightline/pkg/memcache"
)

var Module = fx.Provide(provideQuoteService)

func provideQuoteService(
	sessions mem.SessionStore[*quote.Wizard],
	relay services.MailRelay,
	translator i18n.Translator,
	cfg infra.Config,
	log *zap.Logger,
) services.QuoteServiceInterface {
	return services.NewQuoteService(sessions, relay, translator, cfg.QuoteRecipients, log.Named("quote"))
}
