package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"freightline/cmd/fx/config_fx"
	"freightline/cmd/fx/contact_fx"
	"freightline/cmd/fx/controllers_fx"
	"freightline/cmd/fx/i18n_fx"
	"freightline/cmd/fx/mail_fx"
	"freightline/cmd/fx/memcache_fx"
	"freightline/cmd/fx/pages_fx"
	"freightline/cmd/fx/quote_fx"
	"freightline/cmd/fx/session_fx"
	"freightline/internal/api"
	"freightline/internal/api/controllers"
	"freightline/internal/i18n"
	"freightline/internal/infra"
	"freightline/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			config_fx.Module(envFile),
			i18n_fx.Module,
			memcache_fx.Module,
			session_fx.Module,
			mail_fx.Module,
			quote_fx.Module,
			contact_fx.Module,
			pages_fx.Module,
			controllers_fx.Module,

			fx.Provide(ProvideRouter),
			fx.Invoke(StartServer),
		)
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config, log *zap.Logger) {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: engine}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg infra.Config,
	log *zap.Logger,
	catalog *i18n.Catalog,
	signer *utils.SessionSigner,
	quoteController *controllers.QuoteController,
	contactController *controllers.ContactController,
	pagesController *controllers.PagesController) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	return api.NewRouter(api.RouterParams{
		Logger:      log,
		Catalog:     catalog,
		Signer:      signer,
		CORSOrigins: cfg.CORSOrigins,
		Quote:       quoteController,
		Contact:     contactController,
		Pages:       pagesController,
	})
}
