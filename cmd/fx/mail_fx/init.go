package mail_fx

import (
	"go.uber.org/fx"

	"freightline/internal/infra"
	"freightline/internal/services"
	"freightline/pkg/utils"
)

var Module = fx.Provide(provideMailRelay)

func provideMailRelay(cfg infra.Config) (services.MailRelay, error) {
	return services.NewSMTPMailRelay(services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.MailFrom,
		FromName:   cfg.MailFromName,
		UseSSL:     cfg.SMTP.UseSSL,
		RequireTLS: cfg.SMTP.RequireTLS,

		SiteName: cfg.MailFromName,
		Location: utils.LoadLocation(cfg.TimeZone),
	})
}
