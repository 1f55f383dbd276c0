package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"freightline/internal/infra"
)

// Module provides the loaded config and the zap logger, and routes fx's own
// events through that logger.
func Module(envFiles ...string) fx.Option {
	return fx.Options(
		fx.Provide(
			func() (infra.Config, error) { return infra.LoadConfig(envFiles...) },
			provideLogger,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
}

func provideLogger(lc fx.Lifecycle, cfg infra.Config) (*zap.Logger, error) {
	log, err := infra.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	lc.Append(fx.StopHook(func() { _ = log.Sync() }))
	return log, nil
}
