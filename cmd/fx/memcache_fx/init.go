package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"freightline/internal/infra"
	"freightline/internal/quote"
	mem "freightline/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(provideWizardSessions),
	fx.Provide(func(s *mem.Sessions[*quote.Wizard]) mem.SessionStore[*quote.Wizard] { return s }),
	fx.Invoke(startJanitor),
)

func provideWizardSessions(cfg infra.Config) *mem.Sessions[*quote.Wizard] {
	return mem.NewSessions(cfg.SessionTTL, quote.New)
}

func startJanitor(lc fx.Lifecycle, s *mem.Sessions[*quote.Wizard], cfg infra.Config, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				s.Janitor(ctx, cfg.SessionSweepInterval, func(n int) {
					log.Debug("expired quote sessions swept", zap.Int("removed", n))
				})
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
