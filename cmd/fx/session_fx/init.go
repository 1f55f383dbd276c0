package session_fx

import (
	"go.uber.org/fx"

	"freightline/internal/infra"
	"freightline/pkg/utils"
)

var Module = fx.Provide(provideSigner)

func provideSigner(cfg infra.Config) (*utils.SessionSigner, error) {
	return utils.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
}
